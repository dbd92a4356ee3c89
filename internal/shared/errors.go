package shared

import "fmt"

// ErrorKind classifies domain errors so the transport layer can map them
// to responses without inspecting messages.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindInvalidState ErrorKind = "INVALID_STATE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"-"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports a match against the kind sentinels below, so callers can write
// errors.Is(err, shared.ErrNotFound) for any not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Code == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Kind sentinels. They carry no code and match every error of their kind.
var (
	ErrValidation   = &DomainError{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound     = &DomainError{Kind: KindNotFound, Message: "resource not found"}
	ErrInvalidState = &DomainError{Kind: KindInvalidState, Message: "operation not allowed in current state"}
)

// NewValidationError creates a ValidationError
func NewValidationError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidStateError creates an InvalidStateError
func NewInvalidStateError(code, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindInvalidState, Code: code, Message: fmt.Sprintf(format, args...)}
}
