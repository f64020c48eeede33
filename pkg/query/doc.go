// Package query filters, sorts and pages launch collections.
//
// [Apply] is a pure function over a slice of launches: it keeps the records
// matching every predicate of a [FilterSpec] and returns them in a new slice
// ordered by the filter's sort field and direction. The sort is stable in both
// directions, so records that compare equal keep their input order.
//
//	spec := query.Default()
//	spec.Search = "starlink"
//	spec.Outcome = query.Ptr(launch.Succeeded)
//	view := query.Page(query.Apply(all, spec), spec.Page, spec.Limit)
//
// Paging is not part of Apply. [Page] and [PageCount] slice an already
// filtered view; servers that page on their side receive the filter through
// [FilterSpec.Values].
package query
