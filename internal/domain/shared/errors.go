package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so callers can map it to a response
// without inspecting messages.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindValidation   ErrorKind = "VALIDATION"
	KindIntegrity    ErrorKind = "INTEGRITY"
	KindConflict     ErrorKind = "CONFLICT"
	KindDuplicateKey ErrorKind = "DUPLICATE_KEY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`

	sentinel bool
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A kind sentinel (ErrNotFound, ErrForbidden, ...) matches every error of its kind;
// any other DomainError matches on kind and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.sentinel || t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WithCause returns a copy of the error carrying the given cause
func (e *DomainError) WithCause(cause error) *DomainError {
	cp := *e
	cp.sentinel = false
	cp.Cause = cause
	return &cp
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(KindNotFound, code, message)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(code, message string) *DomainError {
	return NewDomainError(KindForbidden, code, message)
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewIntegrityError creates an integrity error
func NewIntegrityError(code, message string) *DomainError {
	return NewDomainError(KindIntegrity, code, message)
}

func newSentinel(kind ErrorKind, message string) *DomainError {
	return &DomainError{Kind: kind, Code: string(kind), Message: message, sentinel: true}
}

// Common domain errors
var (
	ErrNotFound            = newSentinel(KindNotFound, "Resource not found")
	ErrForbidden           = newSentinel(KindForbidden, "Access to this resource is forbidden")
	ErrInvalidInput        = newSentinel(KindValidation, "Invalid input provided")
	ErrIntegrity           = newSentinel(KindIntegrity, "Data integrity violation")
	ErrConcurrencyConflict = newSentinel(KindConflict, "Resource was modified by another process")
	ErrDuplicateKey        = newSentinel(KindDuplicateKey, "Unique constraint violated")
)

// KindOf returns the kind of err if it is (or wraps) a DomainError
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if !errors.As(err, &de) {
		return "", false
	}
	return de.Kind, true
}
