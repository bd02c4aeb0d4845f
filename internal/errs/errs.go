// Package errs defines the failure taxonomy shared by all domain services.
// Services return one of these kinds; the HTTP boundary translates the kind
// to a status code and a structured body exactly once.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the boundary translator.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindBadRequest
	KindUnauthorized
	KindForbidden
)

// String returns string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unexpected"
	}
}

// HTTPStatus maps a kind to its stable external status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a caller-safe message and optional per-field details
// for aggregated validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a referenced entity that does not exist.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// BadRequest reports a malformed value or missing required reference.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// BadRequestFields reports an aggregated field-by-field validation failure.
func BadRequestFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Fields: fields}
}

// Unauthorized reports a failed or absent credential.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden reports an authenticated caller with insufficient permission.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Unexpected wraps an unclassified fault. The wrapped error is kept for
// logging; the message shown to callers stays generic.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// Wrap attaches an underlying cause to a typed error.
func Wrap(err error, cause error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Message: e.Message, Fields: e.Fields, Err: cause}
	}

	return Unexpected(cause)
}

// KindOf extracts the kind from an error chain, KindUnexpected if untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnexpected
}

// FieldsOf extracts aggregated field details from an error chain, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}

	return nil
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
