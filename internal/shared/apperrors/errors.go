package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business-rule failure so controllers can map it to an
// HTTP status without string matching.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindForbidden       Kind = "FORBIDDEN"
	KindTimingViolation Kind = "TIMING_VIOLATION"
	KindTokenInvalid    Kind = "TOKEN_INVALID"
	KindUnavailable     Kind = "UNAVAILABLE"
	KindInternal        Kind = "INTERNAL"
)

// Error carries a kind plus a user-renderable message. The wrapped cause, if
// any, is for logs only and never surfaces to the client.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a kinded error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a kinded error
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func InvalidInput(message string) *Error    { return New(KindInvalidInput, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func TimingViolation(message string) *Error { return New(KindTimingViolation, message) }
func TokenInvalid(message string) *Error    { return New(KindTokenInvalid, message) }
func Unavailable(message string) *Error     { return New(KindUnavailable, message) }
func Internal(message string, cause error) *Error {
	return Wrap(KindInternal, message, cause)
}

// KindOf returns the kind of err, or KindInternal when err is not kinded.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-facing message of err. Unkinded errors get a
// generic message so internals never leak into responses.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput, KindTimingViolation, KindTokenInvalid, KindUnavailable:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
