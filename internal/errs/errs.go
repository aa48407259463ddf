// Package errs defines the error shapes returned to API clients.
//
// Handlers return *HTTPError values (or wrap them); the response pipeline
// renders them as
//
//	{"code": "NOT_FOUND", "error": "Competence not found"}
//
// and anything that is not an *HTTPError as a generic 500.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FieldError is a validation failure on a single request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is an error that knows its HTTP status.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"error"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError with the same status, so
// errors.Is(err, errs.ErrNotFound) works on errors built with a custom message.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	return ok && t.Status == e.Status
}

func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrBadRequest   = newHTTPError(http.StatusBadRequest, "Bad request")
	ErrUnauthorized = newHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided")
	ErrForbidden    = newHTTPError(http.StatusForbidden, "You do not have permission to perform this action")
	ErrNotFound     = newHTTPError(http.StatusNotFound, "Not found")
)

func NewBadRequestError(message string, fields ...FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message)
	e.Errors = fields
	return e
}

// NewFieldError is a 400 carrying a single field error.
func NewFieldError(field, message string) *HTTPError {
	return NewBadRequestError(message, FieldError{Field: field, Error: message})
}

func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message)
}

func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

// NewInternalServerError never carries the underlying cause; log it instead.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// As unwraps err into an *HTTPError. Unknown errors become a 500.
func As(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return NewInternalServerError(), false
}

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
