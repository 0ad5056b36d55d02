package router

import (
	"fmt"
	"strings"

	"github.com/vango-dev/folio/pkg/routepath"
)

// History is an in-memory history stack with an address-bar strategy.
//
// Entries are locations: a route path plus an optional query string
// ("/cv?lang=en"). The mode only affects how a location is rendered into
// an href and parsed back out of one.
//
// History is not safe for concurrent use; Router guards it.
type History struct {
	mode    HistoryMode
	base    string
	entries []string
	pos     int
}

// NewHistory creates an empty history. The base is a path prefix the
// application is mounted under (e.g., "/site"); "" or "/" mounts at root.
func NewHistory(mode HistoryMode, base string) (*History, error) {
	switch mode {
	case HistoryPath, HistoryHash:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownHistoryMode, int(mode))
	}
	b, err := routepath.NormalizeBase(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase, err)
	}
	return &History{mode: mode, base: b, pos: -1}, nil
}

// Mode returns the history mode.
func (h *History) Mode() HistoryMode {
	return h.mode
}

// Base returns the normalized base ("" for root).
func (h *History) Base() string {
	return h.base
}

// Href renders a location into its address-bar form.
//
//	path mode, base "":      /cv?lang=en
//	path mode, base "/site": /site/cv?lang=en
//	hash mode, base "":      /#/cv?lang=en
func (h *History) Href(location string) string {
	if location == "" {
		location = "/"
	}
	if h.mode == HistoryHash {
		return routepath.JoinBase(h.base, "/") + "#" + location
	}
	path, query, _ := routepath.SplitLocation(location)
	href := routepath.JoinBase(h.base, path)
	if query != "" {
		href += "?" + query
	}
	return href
}

// Location extracts the location from an address-bar href.
// The second result is false when href lies outside the base.
func (h *History) Location(href string) (string, bool) {
	path, query, fragment := routepath.SplitLocation(href)
	if path == "" {
		path = "/"
	}

	rel, ok := routepath.TrimBase(h.base, path)
	if !ok {
		return "", false
	}

	if h.mode == HistoryHash {
		if rel != "/" {
			return "", false
		}
		if fragment == "" {
			return "/", true
		}
		if !strings.HasPrefix(fragment, "/") {
			fragment = "/" + fragment
		}
		return fragment, true
	}

	if query != "" {
		rel += "?" + query
	}
	return rel, true
}

// Push adds a location after the current entry, dropping any forward
// entries.
func (h *History) Push(location string) {
	h.entries = append(h.entries[:h.pos+1], location)
	h.pos = len(h.entries) - 1
}

// Replace overwrites the current entry. On an empty history it pushes.
func (h *History) Replace(location string) {
	if h.pos < 0 {
		h.Push(location)
		return
	}
	h.entries[h.pos] = location
}

// Back moves one entry back.
func (h *History) Back() (string, bool) {
	return h.Go(-1)
}

// Forward moves one entry forward.
func (h *History) Forward() (string, bool) {
	return h.Go(1)
}

// Go moves delta entries through the history. It does nothing and returns
// false if the target is out of range.
func (h *History) Go(delta int) (string, bool) {
	target := h.pos + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		return "", false
	}
	h.pos = target
	return h.entries[h.pos], true
}

// Current returns the current location, or "" if nothing has been visited.
func (h *History) Current() string {
	if h.pos < 0 {
		return ""
	}
	return h.entries[h.pos]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool {
	return h.pos >= 0 && h.pos < len(h.entries)-1
}
