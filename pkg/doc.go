// Package pkg provides the core libraries for launchdeck, a terminal
// dashboard over a launch-vehicle API.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [launch] (records, statistics, series) and [query] (filter,
//     sort and page launches in memory)
//  2. Data access: [apiclient] (JSON GET with status classification and
//     response validation), [httputil] (retry with linear backoff), [cache]
//     (time-boxed cache with coalesced misses) and [launchapi] (cached
//     accessors for every endpoint)
//  3. Infrastructure: [config], [errors], [observability], [metrics] and
//     [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	launch API (HTTP)
//	       ↓
//	  [apiclient] decode + validate
//	       ↓
//	  [httputil] retry
//	       ↓
//	  [cache] fresh entry or single fetch per key
//	       ↓
//	  [launchapi] typed accessors
//	       ↓
//	  [query] filter, sort, page
//	       ↓
//	  internal/cli tables, cards, browser
//
// # Quick Start
//
//	client := apiclient.New("http://localhost:3000", "")
//	svc := launchapi.New(client, cache.New())
//
//	all, err := svc.Launches(ctx, query.FilterSpec{})
//	if err != nil {
//	    return err
//	}
//	spec := query.Default()
//	spec.Search = "starlink"
//	page := query.Page(query.Apply(all, spec), spec.Page, spec.Limit)
package pkg
