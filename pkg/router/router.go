package router

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/folio/pkg/routepath"
)

// Router resolves locations against a Table and tracks the route currently
// displayed. The current route is the only mutable state: it is written by
// navigation and read by whatever renders the view.
type Router struct {
	table   *Table
	history *History
	logger  *slog.Logger

	mu        sync.RWMutex
	current   Route
	matched   bool
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(Navigation)
}

// Option configures a Router.
type Option func(*routerOptions)

type routerOptions struct {
	mode   HistoryMode
	base   string
	logger *slog.Logger
}

// WithHistory sets the history mode. The default is HistoryPath.
func WithHistory(mode HistoryMode) Option {
	return func(o *routerOptions) {
		o.mode = mode
	}
}

// WithBase mounts the application under a path prefix.
func WithBase(base string) Option {
	return func(o *routerOptions) {
		o.base = base
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *routerOptions) {
		o.logger = logger
	}
}

// New creates a router over table.
func New(table *Table, opts ...Option) (*Router, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	h, err := NewHistory(o.mode, o.base)
	if err != nil {
		return nil, err
	}

	return &Router{
		table:   table,
		history: h,
		logger:  o.logger.With("component", "router", "history", o.mode.String()),
	}, nil
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}

// Mode returns the history mode.
func (r *Router) Mode() HistoryMode {
	return r.history.Mode()
}

// Base returns the normalized base path ("" for root).
func (r *Router) Base() string {
	return r.history.Base()
}

// Resolve matches a location against the table. Any query string or
// fragment is ignored.
func (r *Router) Resolve(location string) (Route, error) {
	path, _, _ := routepath.SplitLocation(location)
	return r.table.Resolve(path)
}

// Current returns the route currently displayed. The second result is
// false before the first navigation and after navigating to an unknown path.
func (r *Router) Current() (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.matched
}

// Location returns the current history location.
func (r *Router) Location() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history.Current()
}

// CanGoBack reports whether Back would move.
func (r *Router) CanGoBack() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history.CanGoBack()
}

// CanGoForward reports whether Forward would move.
func (r *Router) CanGoForward() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history.CanGoForward()
}

// Href returns the address-bar form of the named route's path.
func (r *Router) Href(name string) (string, error) {
	route, ok := r.table.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return r.history.Href(route.Path), nil
}

// HrefFor returns the address-bar form of a location.
func (r *Router) HrefFor(location string) string {
	return r.history.Href(location)
}

// LocationFor parses an address-bar href back into a location.
func (r *Router) LocationFor(href string) (string, bool) {
	return r.history.Location(href)
}

// Navigate moves to location, which is a route path with an optional query
// string. The history entry is recorded whether or not the path matches,
// mirroring an address bar; on no match the current route is cleared and
// the returned error wraps ErrNotFound. Pushing the current location
// replaces it instead.
func (r *Router) Navigate(location string, opts ...NavigateOption) (Navigation, error) {
	options := NavigateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if err := routepath.ValidateNavPath(location); err != nil {
		return Navigation{}, err
	}
	location, err := buildLocation(location, options)
	if err != nil {
		return Navigation{}, err
	}

	typ := NavigationPush
	if options.Replace {
		typ = NavigationReplace
	}

	r.mu.Lock()
	// A push to the entry already shown would leave a duplicate the
	// browser never records.
	if typ == NavigationPush && r.history.Len() > 0 && r.history.Current() == location {
		typ = NavigationReplace
	}
	if typ == NavigationReplace {
		r.history.Replace(location)
	} else {
		r.history.Push(location)
	}
	nav, err := r.commitLocked(location, typ)
	fns := r.listenersLocked()
	r.mu.Unlock()

	r.notify(fns, nav)
	return nav, err
}

// NavigateName navigates to the route with the given name.
func (r *Router) NavigateName(name string, opts ...NavigateOption) (Navigation, error) {
	route, ok := r.table.Lookup(name)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return r.Navigate(route.Path, opts...)
}

// Start performs the initial navigation from an address-bar href, replacing
// the current history entry. An href outside the base is not found.
func (r *Router) Start(href string) (Navigation, error) {
	location, ok := r.history.Location(href)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %q is outside base %q", ErrNotFound, href, r.history.Base())
	}
	return r.Navigate(location, WithReplace())
}

// Back moves one entry back in history and re-resolves it.
func (r *Router) Back() (Navigation, error) {
	return r.traverse(NavigationBack)
}

// Forward moves one entry forward in history and re-resolves it.
func (r *Router) Forward() (Navigation, error) {
	return r.traverse(NavigationForward)
}

func (r *Router) traverse(typ NavigationType) (Navigation, error) {
	r.mu.Lock()
	var (
		location string
		ok       bool
	)
	if typ == NavigationBack {
		location, ok = r.history.Back()
	} else {
		location, ok = r.history.Forward()
	}
	if !ok {
		r.mu.Unlock()
		return Navigation{}, fmt.Errorf("%w: cannot go %s", ErrNoHistory, typ)
	}
	nav, err := r.commitLocked(location, typ)
	fns := r.listenersLocked()
	r.mu.Unlock()

	r.notify(fns, nav)
	return nav, err
}

// commitLocked resolves location and updates the current route.
// r.mu must be held.
func (r *Router) commitLocked(location string, typ NavigationType) (Navigation, error) {
	nav := Navigation{
		Location: location,
		Href:     r.history.Href(location),
		Type:     typ,
	}
	if r.matched {
		nav.From = r.current
	}

	route, err := r.Resolve(location)
	if err != nil {
		r.current, r.matched = Route{}, false
		if errors.Is(err, ErrNotFound) {
			r.logger.Debug("navigation not found", "location", location, "type", typ.String())
		}
		return nav, err
	}

	r.current, r.matched = route, true
	nav.To = route
	nav.Found = true
	r.logger.Debug("navigated", "route", route.Name, "location", location, "type", typ.String())
	return nav, nil
}

// Subscribe registers fn to be called after every navigation, including
// ones that did not match a route. It returns a function that removes the
// subscription. Listeners run outside the router lock.
func (r *Router) Subscribe(fn func(Navigation)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Router) listenersLocked() []func(Navigation) {
	if len(r.listeners) == 0 {
		return nil
	}
	fns := make([]func(Navigation), len(r.listeners))
	for i, l := range r.listeners {
		fns[i] = l.fn
	}
	return fns
}

func (r *Router) notify(fns []func(Navigation), nav Navigation) {
	for _, fn := range fns {
		fn(nav)
	}
}
