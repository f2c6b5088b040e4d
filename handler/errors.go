package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse is reported when a handler returns no Response.
	ErrNilResponse = errors.New("handler.nil_response")
	// ErrNotApplicable is returned by a Bind that finds nothing to read in
	// the request. Wrap skips such binders.
	ErrNotApplicable = errors.New("handler.bind_not_applicable")
)

// HTTPError is an error with a status code and a message key.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // message key, e.g. "not_found"
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed    = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error is a Response that hands err to the error handler.
func Error(err error) Response {
	return errorResponse{err: err}
}
