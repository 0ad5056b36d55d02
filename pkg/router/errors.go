package router

import "errors"

// Router errors.
var (
	// ErrNotFound is returned when a path matches no route.
	ErrNotFound = errors.New("route not found")

	// ErrUnknownName is returned when a route name is not in the table.
	ErrUnknownName = errors.New("unknown route name")

	ErrDuplicatePath      = errors.New("duplicate route path")
	ErrDuplicateName      = errors.New("duplicate route name")
	ErrEmptyName          = errors.New("route name is empty")
	ErrInvalidRoutePath   = errors.New("invalid route path")
	ErrUnknownHistoryMode = errors.New("unknown history mode")
	ErrInvalidBase        = errors.New("invalid history base")
	ErrNilTable           = errors.New("router requires a route table")

	// ErrNoHistory is returned by Back and Forward at either end of the
	// history stack.
	ErrNoHistory = errors.New("no history entry")
)
