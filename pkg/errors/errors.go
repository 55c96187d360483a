package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed application error carrying a stable machine code and the
// HTTP status it maps to. The wrapped cause never reaches the wire.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with no underlying cause.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Sentinels for the shared error taxonomy. Services Clone these when a more
// specific message helps the caller.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrInvalidScore       = New("INVALID_SCORE", http.StatusBadRequest, "score must be between 0 and 100")
	ErrNoRecordsFound     = New("NO_RECORDS_FOUND", http.StatusNotFound, "no score records for the requested term and session")
	ErrRender             = New("RENDER_ERROR", http.StatusUnprocessableEntity, "report input is malformed")
	ErrUpstreamFailure    = New("UPSTREAM_FAILURE", http.StatusBadGateway, "upstream dependency unavailable")
)

// ErrCacheMiss signals a cache lookup found no entry. It is a sentinel
// consumed by the cache service, never surfaced to clients.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error. Unknown errors become an
// INTERNAL_ERROR wrapper so their detail stays out of responses.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies a sentinel, optionally replacing its message. The code and
// status always carry over so taxonomy stays intact.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}

	out := *err
	if message != "" {
		out.Message = message
	}
	return &out
}
