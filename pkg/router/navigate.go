package router

import (
	"fmt"
	"net/url"
)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query are query parameters to add to the location.
	Query map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation location.
func WithQuery(query map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = query
	}
}

// buildLocation merges opts.Query into location.
func buildLocation(location string, opts NavigateOptions) (string, error) {
	if len(opts.Query) == 0 {
		return location, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid location: %s", location)
	}

	q := u.Query()
	for k, v := range opts.Query {
		q.Set(k, fmt.Sprintf("%v", v))
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String(), nil
}
