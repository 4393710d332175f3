// Package table implements the tabular data engine behind every list page.
//
// A page is one configured [View] over a flat record set. The engine never
// assumes specific record keys; everything view-specific lives in a [Config]:
// the endpoint to fetch, the column list, the filter keys, the page size,
// the search mode, an optional normalizer and the export layout.
//
// # Pipeline
//
// Data flows one way:
//
//	Load  ->  Filter  ->  Sort  ->  Paginate  ->  render
//	              \
//	               +-->  Export (xlsx, pdf, csv)
//
// [Load] absorbs every fetch failure and always yields a usable (possibly
// empty) record sequence. [Filter], [Sort] and [Paginate] are pure functions
// over that sequence. Exports tap the filtered set directly, so they follow
// the active search and filter state but not the active page, and by
// default not the active sort either.
//
// # Views
//
// [View] owns the transient interaction state for one mounted page: search
// text, per-column filters, sort state and page index. Derived sequences are
// memoized so that paging never re-runs the filter, and the page index is
// clamped on every snapshot so a stale index can never produce a silent
// empty page.
//
//	v := table.NewView(cfg)
//	v.Mount(ctx, fetcher)
//	v.Wait(ctx)
//	v.SetFilter("State", "VA")
//	snap := v.Snapshot()
//
// # Filter sentinel
//
// The canonical "no filter" value is the empty string. "All" (any case) is
// accepted as input and treated the same way; see [IsNoFilter].
package table
