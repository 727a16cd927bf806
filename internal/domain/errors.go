package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrStorage     = errors.New("storage error")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError reports a client-caused input failure. Message is the
// user-facing text returned in the error envelope.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr)
// to read the offending field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports that no TODO with the given id exists in the store.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("TODO with id %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// StorageFailure wraps an underlying store error so that it matches
// ErrStorage while keeping the original cause in the chain.
func StorageFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
