package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Every kind maps to exactly one HTTP status.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the sentinel
// values below can be used with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    statusFor(kind),
		Message: message,
		Err:     err,
	}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = New(KindValidation, "Validation error", nil)
	ErrNotFound   = New(KindNotFound, "Not found", nil)
	ErrAuth       = New(KindAuth, "Unauthorized", nil)
	ErrForbidden  = New(KindForbidden, "Forbidden", nil)
	ErrConflict   = New(KindConflict, "Conflict", nil)
	ErrInternal   = New(KindInternal, "Internal server error", nil)
)

func Validation(message string) *Error { return New(KindValidation, message, nil) }

func NotFound(message string) *Error { return New(KindNotFound, message, nil) }

func Unauthorized(message string) *Error { return New(KindAuth, message, nil) }

func Forbidden(message string) *Error { return New(KindForbidden, message, nil) }

func Conflict(message string) *Error { return New(KindConflict, message, nil) }

// Internal wraps an unexpected failure. The message is what clients see; err is only logged.
func Internal(message string, err error) *Error { return New(KindInternal, message, err) }

// As extracts the *Error from err, or nil when err is not an application error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the HTTP status for any error; unclassified errors are 500.
func CodeOf(err error) int {
	if appErr := As(err); appErr != nil {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsInternal reports whether err should be hidden from clients.
func IsInternal(err error) bool {
	appErr := As(err)
	return appErr == nil || appErr.Kind == KindInternal
}
