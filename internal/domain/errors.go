package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidRoomCount   = errors.New("invalid room count")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidReview      = errors.New("invalid review")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCancellationClosed = errors.New("cancellation window closed")
)

// ValidationError carries a user-facing message next to its kind so forms can
// render it inline.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Kind }

func invalid(kind error, msg string) error {
	return &ValidationError{Kind: kind, Message: msg}
}

// Persistence wraps a store failure; the original message is kept verbatim.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
