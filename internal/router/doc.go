// Package router provides the route table and dispatch engine for
// routemux.
//
// This package implements path plus query-key based request routing
// with specificity ordering, per-route response header injection, and
// handler dispatch, suitable for small static route sets.
//
// # Features
//
//   - Exact path matching after normalization
//   - Query-key discrimination (presence only, value ignored)
//   - Specificity ordering: keyed routes before a path's catch-all
//   - Duplicate (path, queryKey) detection at registration
//   - Ordered per-route response headers with a unique-field policy
//   - Lock-free concurrent dispatch over an immutable table
//
// # Usage
//
// Build a table during setup, then hand it to a dispatcher:
//
//	table := router.NewTable()
//	entry := router.NewEntry("/download", "id")
//	entry.SetContentType("text/csv")
//	entry.SetHandler(myHandler)
//	if err := table.Register(entry); err != nil {
//	    log.Fatal(err)
//	}
//
//	d := router.NewDispatcher(table)
//	outcome := d.Dispatch(w, r)
//
// Registration must complete before the first Dispatch call; the table
// is read-only afterwards.
package router
