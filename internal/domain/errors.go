package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrAccessDenied means the document exists but the principal holds no
	// active grant for it. Distinct from ErrForbidden, which is an
	// authorization failure on a mutating operation (e.g. sharing a
	// document you do not own).
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidDuration means a share duration outside the allowed
	// [MinShareDays, MaxShareDays] window.
	ErrInvalidDuration = errors.New("invalid share duration")
)

// Content-store layer errors.
var (
	ErrStoreUnavailable  = errors.New("content store unavailable")
	ErrEncryptionFailure = errors.New("encryption failure")
	ErrDecryptionFailure = errors.New("decryption failure")
)

// Ledger layer errors. These never propagate out of the service layer as the
// overall failure of an operation, since the ledger is a best-effort mirror.
var (
	ErrLedgerTimeout = errors.New("ledger timeout")
	ErrLedgerFailure = errors.New("ledger failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
