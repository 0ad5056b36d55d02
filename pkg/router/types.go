package router

import (
	"fmt"
	"strings"
)

// Component is an opaque reference to a view. It is owned by the host
// application; the router only stores and returns it.
type Component any

// Route associates a URL path with a named view.
type Route struct {
	// Path is the literal URL path (e.g., "/cv").
	Path string

	// Name is the unique route identifier (e.g., "cv").
	Name string

	// Component is the view displayed for this route.
	Component Component
}

// IsZero reports whether r is the empty route.
func (r Route) IsZero() bool {
	return r.Path == "" && r.Name == "" && r.Component == nil
}

// String returns "name (path)".
func (r Route) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Path)
}

// HistoryMode selects how navigation state is reflected in the address bar.
type HistoryMode int

const (
	// HistoryPath uses real URL paths (/cv), backed by the browser
	// history API.
	HistoryPath HistoryMode = iota

	// HistoryHash keeps the route in the URL fragment (/#/cv).
	HistoryHash
)

// String returns the mode name.
func (m HistoryMode) String() string {
	switch m {
	case HistoryPath:
		return "path"
	case HistoryHash:
		return "hash"
	default:
		return fmt.Sprintf("HistoryMode(%d)", int(m))
	}
}

// ParseHistoryMode parses "path" or "hash". The empty string is path mode.
func ParseHistoryMode(s string) (HistoryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "path":
		return HistoryPath, nil
	case "hash":
		return HistoryHash, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHistoryMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m HistoryMode) MarshalText() ([]byte, error) {
	switch m {
	case HistoryPath, HistoryHash:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownHistoryMode, int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *HistoryMode) UnmarshalText(text []byte) error {
	mode, err := ParseHistoryMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// NavigationType describes how a navigation moved through history.
type NavigationType int

const (
	NavigationPush NavigationType = iota
	NavigationReplace
	NavigationBack
	NavigationForward
)

// String returns the navigation type name.
func (t NavigationType) String() string {
	switch t {
	case NavigationPush:
		return "push"
	case NavigationReplace:
		return "replace"
	case NavigationBack:
		return "back"
	case NavigationForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Navigation describes a completed navigation.
type Navigation struct {
	// From is the route displayed before the navigation (zero if none).
	From Route

	// To is the route displayed after the navigation (zero if not found).
	To Route

	// Location is the route path plus any query string (e.g., "/cv?lang=en").
	Location string

	// Href is the address-bar form of Location for the history mode.
	Href string

	// Found reports whether Location matched a route.
	Found bool

	// Type is how the history moved.
	Type NavigationType
}
