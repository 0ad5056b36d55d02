// Package router implements the client-side route table for folio.
//
// The router provides:
//   - An ordered, immutable table of literal routes
//   - Exact-match resolution, first match wins
//   - Path-based and hash-based history strategies
//   - A navigator that tracks the currently displayed route
//
// # Route Table
//
// A table is built once at startup from (path, name, component) triples.
// Paths and names must be unique. The component is an opaque handle owned
// by the host; the router hands it back on resolve and never inspects it.
//
//	table, err := router.NewTable(
//	    router.Route{Path: "/", Name: "home", Component: home},
//	    router.Route{Path: "/cv", Name: "cv", Component: cv},
//	)
//
// # Resolution
//
// Resolution compares the requested path against each entry in table order.
// There is no parameter or wildcard syntax and no trailing slash folding:
//
//	table.Resolve("/cv")   // cv
//	table.Resolve("/cv/")  // ErrNotFound
//
// # Navigation
//
//	r, err := router.New(table, router.WithHistory(router.HistoryPath))
//	nav, err := r.Navigate("/cv")
//	// nav.To.Name == "cv", nav.Href == "/cv"
//
// Navigating to a path that matches no route still moves the history (the
// address bar changes) but clears the current route and returns an error
// wrapping ErrNotFound. What to display in that case is up to the host.
package router
