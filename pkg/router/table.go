package router

import (
	"fmt"
	"strings"

	"github.com/vango-dev/folio/pkg/routepath"
)

// Table is an ordered, immutable set of routes.
// Order is match priority; the first route whose path equals the requested
// path wins.
type Table struct {
	routes []Route
	byName map[string]int
}

// NewTable validates routes and builds a table in the given order.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byName: make(map[string]int, len(routes)),
	}
	paths := make(map[string]string, len(routes))

	for _, r := range routes {
		if err := routepath.ValidateRoutePath(r.Path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoutePath, err)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: path %q", ErrEmptyName, r.Path)
		}
		if other, dup := paths[r.Path]; dup {
			return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicatePath, r.Path, other, r.Name)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}

		paths[r.Path] = r.Name
		t.byName[r.Name] = len(t.routes)
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error.
// It is meant for literal tables declared at package level.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the first route whose path equals path.
func (t *Table) Resolve(path string) (Route, error) {
	for _, r := range t.routes {
		if r.Path == path {
			return r, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %q", ErrNotFound, path)
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Names returns the route names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.Name
	}
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}
