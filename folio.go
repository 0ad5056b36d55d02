// Package folio is a two-page personal site: a home page and a CV, with
// client-side navigation between them.
//
// The route table is the whole application:
//
//	/    -> home
//	/cv  -> cv
//
// Routes builds it from any pair of view handles, so the table can be
// mounted into any host:
//
//	r, err := folio.NewRouter(homeView, cvView)
//	nav, err := r.Navigate("/cv")
//	// nav.To.Name == "cv", nav.To.Component == cvView
//
// App wires the same table into the HTTP/WebSocket host in pkg/server,
// using the views in internal/views.
package folio

import (
	"github.com/vango-dev/folio/pkg/router"
)

// Route names.
const (
	Home = "home"
	CV   = "cv"
)

// Route paths.
const (
	HomePath = "/"
	CVPath   = "/cv"
)

// Routes returns the route table entries in order. The components are
// stored as given and never inspected.
func Routes(home, cv router.Component) []router.Route {
	return []router.Route{
		{Path: HomePath, Name: Home, Component: home},
		{Path: CVPath, Name: CV, Component: cv},
	}
}

// NewTable builds the route table.
func NewTable(home, cv router.Component) (*router.Table, error) {
	return router.NewTable(Routes(home, cv)...)
}

// NewRouter builds a router over the route table. It uses path-based
// history unless an option says otherwise.
func NewRouter(home, cv router.Component, opts ...router.Option) (*router.Router, error) {
	table, err := NewTable(home, cv)
	if err != nil {
		return nil, err
	}
	return router.New(table, append([]router.Option{router.WithHistory(router.HistoryPath)}, opts...)...)
}
