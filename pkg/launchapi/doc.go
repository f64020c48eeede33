// Package launchapi exposes the launch API as typed, cached accessors.
//
// Every accessor is a thin configuration over one fetch path: an endpoint,
// a cache key and a TTL. A lookup first consults the shared [cache.Store];
// on a miss the request goes through [httputil.Retry] around
// [apiclient.Client.Get], and only a successful, validated response is
// stored.
//
//	svc := launchapi.New(client, cache.New(),
//	    launchapi.WithRetry(3, time.Second),
//	    launchapi.WithLogger(logger),
//	)
//	stats, err := svc.Stats(ctx)
//
// # Series
//
// The aggregate series are addressed by the closed [SeriesID] enumeration.
// [Service.AllSeries] fetches every series concurrently and reports each
// outcome separately. With [WithFallback], a series that cannot be fetched
// is replaced by built-in sample data and flagged as a substitute.
package launchapi
