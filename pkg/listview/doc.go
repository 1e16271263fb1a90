// Package listview is the list-management engine behind every ERP list page:
// free-text search, discrete criteria, pagination, and row selection over a
// read-only record collection, plus foreign-key label resolution.
//
// The leaves (ResolveLabel, BuildPredicate, Paginate, Selection) are pure.
// Controller composes them and recomputes its View from state on every call.
// A Controller has a single owner and is not safe for concurrent use; the
// asynchronous fetch that feeds it lives at the call site.
package listview
