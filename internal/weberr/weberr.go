// Package weberr translates backend and validation failures into a
// typed kind plus a human-readable message before anything reaches a
// template or a JSON body. Raw errors never leave the handler layer.
package weberr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota + 1
	Unauthorized
	Forbidden
	NotFound
	Backend
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a typed error. msg is what the user sees; err is the
// underlying cause kept for logging only.
func E(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// HTTPStatus maps an error to its response status. Unknown errors are
// treated as backend failures.
func HTTPStatus(err error) int {
	var we *Error
	if !errors.As(err, &we) {
		return http.StatusInternalServerError
	}
	switch we.Kind {
	case Validation:
		return http.StatusUnprocessableEntity
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message, falling back to a generic
// one for untyped errors so internals never leak into a page.
func Message(err error) string {
	var we *Error
	if errors.As(err, &we) {
		return we.Message
	}
	return "something went wrong"
}

func IsKind(err error, kind Kind) bool {
	var we *Error
	return errors.As(err, &we) && we.Kind == kind
}
