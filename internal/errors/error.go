package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/folio/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRouting Category = "routing"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
)

// FolioError is a structured error with a code, suggestions and an
// optional wrapped cause.
type FolioError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FolioError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FolioError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FolioError) WithSuggestion(s string) *FolioError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FolioError) WithDetail(d string) *FolioError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *FolioError) Wrap(err error) *FolioError {
	e.Wrapped = err
	return e
}

// New creates a FolioError from a registered error code.
func New(code string) *FolioError {
	template, ok := registry[code]
	if !ok {
		return &FolioError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FolioError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new FolioError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FolioError {
	return &FolioError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FolioError.
// If err is already a FolioError it is returned as is.
func FromError(err error, code string) *FolioError {
	if err == nil {
		return nil
	}
	var fe *FolioError
	if stderrors.As(err, &fe) {
		return fe
	}
	return New(code).Wrap(err)
}

// FromRouteError maps a router error onto its registered code.
func FromRouteError(err error) *FolioError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, router.ErrNotFound):
		return New("E200").Wrap(err).
			WithSuggestion("Run 'folio routes' to list the defined paths")
	case stderrors.Is(err, router.ErrDuplicatePath):
		return New("E201").Wrap(err)
	case stderrors.Is(err, router.ErrDuplicateName):
		return New("E202").Wrap(err)
	case stderrors.Is(err, router.ErrInvalidRoutePath), stderrors.Is(err, router.ErrEmptyName):
		return New("E203").Wrap(err)
	case stderrors.Is(err, router.ErrUnknownName):
		return New("E204").Wrap(err).
			WithSuggestion("Run 'folio routes' to list the defined names")
	case stderrors.Is(err, router.ErrUnknownHistoryMode):
		return New("E103").Wrap(err)
	case stderrors.Is(err, router.ErrInvalidBase):
		return New("E106").Wrap(err)
	default:
		return FromError(err, "E205")
	}
}
