// Package apperr defines the error taxonomy shared by every handler, service
// and worker in rustrak. It generalizes the two-sentinel pattern used by
// privacy-service (ErrNotFound / ErrInvalidInput) into the full kind set the
// ingest/digest/alert pipeline needs.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP status mapping and logging.
type Kind string

const (
	KindNotFound        Kind = "NotFound"
	KindValidation      Kind = "Validation"
	KindConflict        Kind = "Conflict"
	KindUnauthorized    Kind = "Unauthorized"
	KindPayloadTooLarge Kind = "PayloadTooLarge"
	KindRateLimited     Kind = "RateLimited"
	KindDatabase        Kind = "Database"
	KindInternal        Kind = "Internal"
)

// Error is the typed error carried across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Validation(message string) *Error      { return New(KindValidation, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }
func PayloadTooLarge(message string) *Error { return New(KindPayloadTooLarge, message) }
func RateLimited(message string) *Error     { return New(KindRateLimited, message) }

func Database(cause error) *Error {
	return Wrap(KindDatabase, "unexpected storage error", cause)
}

func Internal(cause error) *Error {
	return Wrap(KindInternal, "internal error", cause)
}

// As extracts an *Error from err, returning (nil, false) for anything else.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
