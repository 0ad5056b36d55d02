package router

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/folio/pkg/routepath"
)

type view struct{ name string }

var (
	homeView = &view{name: "Home"}
	cvView   = &view{name: "CV"}
)

func siteRoutes() []Route {
	return []Route{
		{Path: "/", Name: "home", Component: homeView},
		{Path: "/cv", Name: "cv", Component: cvView},
	}
}

func TestTableResolve(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	tests := []struct {
		path      string
		wantName  string
		wantView  *view
		wantFound bool
	}{
		{path: "/", wantName: "home", wantView: homeView, wantFound: true},
		{path: "/cv", wantName: "cv", wantView: cvView, wantFound: true},
		{path: "/cv/", wantFound: false},
		{path: "/CV", wantFound: false},
		{path: "", wantFound: false},
		{path: "cv", wantFound: false},
		{path: "/about", wantFound: false},
		{path: "/cv/extra", wantFound: false},
		{path: "//", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, err := table.Resolve(tt.path)
			if !tt.wantFound {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("Resolve(%q) error = %v, want ErrNotFound", tt.path, err)
				}
				if !route.IsZero() {
					t.Errorf("Resolve(%q) route = %v, want zero", tt.path, route)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.path, err)
			}
			if route.Name != tt.wantName {
				t.Errorf("Resolve(%q).Name = %q, want %q", tt.path, route.Name, tt.wantName)
			}
			if route.Component != Component(tt.wantView) {
				t.Errorf("Resolve(%q).Component = %v, want %v", tt.path, route.Component, tt.wantView)
			}
		})
	}
}

func TestTableOrderDoesNotAffectDisjointPaths(t *testing.T) {
	routes := siteRoutes()
	reversed := []Route{routes[1], routes[0]}

	a := MustTable(routes...)
	b := MustTable(reversed...)

	for _, path := range []string{"/", "/cv", "/missing"} {
		ra, errA := a.Resolve(path)
		rb, errB := b.Resolve(path)
		if ra.Name != rb.Name || (errA == nil) != (errB == nil) {
			t.Errorf("Resolve(%q) differs by order: %v/%v vs %v/%v", path, ra, errA, rb, errB)
		}
	}
}

func TestTableOrderIsStable(t *testing.T) {
	table := MustTable(siteRoutes()...)

	if got, want := table.Names(), []string{"home", "cv"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	routes := table.Routes()
	routes[0].Name = "mutated"
	if table.Routes()[0].Name != "home" {
		t.Error("Routes() must return a copy")
	}
}

func TestTableNamesUnique(t *testing.T) {
	table := MustTable(siteRoutes()...)
	seen := make(map[string]bool)
	for _, name := range table.Names() {
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func TestTableLookup(t *testing.T) {
	table := MustTable(siteRoutes()...)

	route, ok := table.Lookup("cv")
	if !ok || route.Path != "/cv" {
		t.Errorf("Lookup(cv) = %v, %v", route, ok)
	}
	if _, ok := table.Lookup("blog"); ok {
		t.Error("Lookup(blog) should fail")
	}
}

func TestNewTableRejectsInvalidRoutes(t *testing.T) {
	tests := []struct {
		name    string
		routes  []Route
		wantErr error
	}{
		{
			name: "duplicate path",
			routes: []Route{
				{Path: "/", Name: "home"},
				{Path: "/", Name: "index"},
			},
			wantErr: ErrDuplicatePath,
		},
		{
			name: "duplicate name",
			routes: []Route{
				{Path: "/", Name: "home"},
				{Path: "/cv", Name: "home"},
			},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "empty name",
			routes:  []Route{{Path: "/cv", Name: " "}},
			wantErr: ErrEmptyName,
		},
		{
			name:    "relative path",
			routes:  []Route{{Path: "cv", Name: "cv"}},
			wantErr: ErrInvalidRoutePath,
		},
		{
			name:    "trailing slash",
			routes:  []Route{{Path: "/cv/", Name: "cv"}},
			wantErr: ErrInvalidRoutePath,
		},
		{
			name:    "param syntax",
			routes:  []Route{{Path: "/cv/:section", Name: "cv"}},
			wantErr: ErrInvalidRoutePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTable error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTableWrapsPathError(t *testing.T) {
	_, err := NewTable(Route{Path: "/cv/", Name: "cv"})
	if !errors.Is(err, routepath.ErrTrailingSlash) {
		t.Errorf("error = %v, want it to wrap routepath.ErrTrailingSlash", err)
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTable should panic on duplicate names")
		}
	}()
	MustTable(Route{Path: "/", Name: "x"}, Route{Path: "/y", Name: "x"})
}

func TestEmptyTable(t *testing.T) {
	table, err := NewTable()
	if err != nil {
		t.Fatalf("NewTable() failed: %v", err)
	}
	if _, err := table.Resolve("/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve on empty table = %v, want ErrNotFound", err)
	}
}
