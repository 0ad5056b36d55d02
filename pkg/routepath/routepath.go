// Package routepath holds the path rules shared by the route table and the
// navigation history.
package routepath

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrRelativePath    = errors.New("path must start with /")
	ErrTrailingSlash   = errors.New("path has a trailing slash")
	ErrEmptySegment    = errors.New("path has an empty segment")
	ErrDotSegment      = errors.New("path has a . or .. segment")
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
	ErrPatternInPath   = errors.New("path contains pattern syntax")
	ErrSuffixInPath    = errors.New("path contains a query or fragment")
	ErrAbsoluteURL     = errors.New("absolute URLs are not navigable")
	ErrPathEscapesRoot = errors.New("path escapes root via ..")
)

// ValidateRoutePath checks that p is usable as a literal route path.
//
// Route paths are compared byte for byte at resolve time, so a definition
// must already be in the one form a location can take: absolute, no trailing
// slash (except root), no empty, "." or ".." segments, and no pattern or
// URL syntax.
func ValidateRoutePath(p string) error {
	if p == "" || p[0] != '/' {
		return fmt.Errorf("%w: %q", ErrRelativePath, p)
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("%w: %q", ErrBackslashInPath, p)
	}
	if strings.Contains(p, "\x00") || strings.Contains(strings.ToUpper(p), "%00") {
		return fmt.Errorf("%w: %q", ErrNullByteInPath, p)
	}
	if strings.ContainsAny(p, "?#") {
		return fmt.Errorf("%w: %q", ErrSuffixInPath, p)
	}
	if strings.ContainsAny(p, ":*") {
		return fmt.Errorf("%w: %q", ErrPatternInPath, p)
	}
	if p == "/" {
		return nil
	}
	if strings.HasSuffix(p, "/") {
		return fmt.Errorf("%w: %q", ErrTrailingSlash, p)
	}
	for _, seg := range strings.Split(p[1:], "/") {
		switch seg {
		case "":
			return fmt.Errorf("%w: %q", ErrEmptySegment, p)
		case ".", "..":
			return fmt.Errorf("%w: %q", ErrDotSegment, p)
		}
	}
	return nil
}

// SplitLocation splits a location into its path, query and fragment.
// The query and fragment are returned without their leading "?" and "#".
func SplitLocation(location string) (path, query, fragment string) {
	location, fragment, _ = strings.Cut(location, "#")
	path, query, _ = strings.Cut(location, "?")
	return path, query, fragment
}

// ValidateNavPath rejects navigation targets that would leave the
// application: full URLs, protocol-relative URLs and relative paths.
func ValidateNavPath(p string) error {
	if strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		strings.HasPrefix(p, "//") {
		return fmt.Errorf("%w: %q", ErrAbsoluteURL, p)
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %q", ErrRelativePath, p)
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("%w: %q", ErrBackslashInPath, p)
	}
	if strings.Contains(p, "\x00") {
		return fmt.Errorf("%w: %q", ErrNullByteInPath, p)
	}
	return nil
}

// NormalizeBase returns base in the form "/prefix" with no trailing slash,
// or "" for the root. Empty and "." segments are dropped; ".." is resolved
// and may not climb above the root.
func NormalizeBase(base string) (string, error) {
	if strings.ContainsAny(base, "\\\x00?#") {
		return "", fmt.Errorf("%w: base %q", ErrInvalidPath, base)
	}

	var segs []string
	for _, seg := range strings.Split(base, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segs) == 0 {
				return "", fmt.Errorf("%w: base %q", ErrPathEscapesRoot, base)
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}

	if len(segs) == 0 {
		return "", nil
	}
	return "/" + strings.Join(segs, "/"), nil
}

// JoinBase prefixes p with a normalized base.
func JoinBase(base, p string) string {
	if base == "" {
		return p
	}
	if p == "/" {
		return base + "/"
	}
	return base + p
}

// TrimBase strips a normalized base from p. The second result is false
// when p lies outside the base.
func TrimBase(base, p string) (string, bool) {
	if base == "" {
		return p, true
	}
	if p == base {
		return "/", true
	}
	rest, ok := strings.CutPrefix(p, base)
	if !ok || !strings.HasPrefix(rest, "/") {
		return "", false
	}
	return rest, true
}
