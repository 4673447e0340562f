// Package errors defines the domain error taxonomy shared by services and
// handlers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes. Handlers map each code onto one HTTP status.
const (
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeThrottled    = "THROTTLED"
	CodeInternal     = "INTERNAL"
)

// DomainError is an error with a stable code and a caller-safe message.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches on code and message so wrapped copies of a sentinel compare
// equal while distinct errors sharing a code do not.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a cause to a new DomainError.
func Wrap(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Internal hides err behind a generic message.
func Internal(err error) *DomainError {
	return Wrap(CodeInternal, "internal server error", err)
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// As is errors.As re-exported so callers need not import both packages.
func As(err error, target any) bool { return stderrors.As(err, target) }
