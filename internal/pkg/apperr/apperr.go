package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an API-facing error carrying an HTTP status and a stable code.
// Services return these; the response layer maps everything else to 500.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, errors.New(message))
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, errors.New(message))
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, errors.New(message))
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, errors.New(message))
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, errors.New(message))
}

// Internal preserves apperr values already in the chain so a wrapped 4xx is
// not masked as a 500.
func Internal(err error) *Error {
	if apiErr := From(err); apiErr != nil {
		return apiErr
	}
	return New(http.StatusInternalServerError, "internal_error", err)
}

// From extracts an *Error from err's chain, or nil when err carries none.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
