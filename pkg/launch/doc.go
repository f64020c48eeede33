// Package launch defines the records served by the launch API: launches with
// their rocket and launchpad, aggregate statistics, labelled series and the
// service metadata.
//
// Records are immutable from the client's point of view. Listings are
// replaced wholesale whenever they are fetched again.
//
// Types that arrive over the wire implement Validate, which the API client
// calls after decoding so that malformed responses fail at the boundary
// instead of deep inside the query engine or the renderer.
package launch
