// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrEmptyInput indicates the user sent a blank message.
	ErrEmptyInput = errors.New("empty input")

	// ErrProviderFailure indicates the text-generation provider failed.
	ErrProviderFailure = errors.New("generation provider failure")

	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrVersionConflict indicates a compare-and-swap update lost a race.
	ErrVersionConflict = errors.New("version conflict")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// IsEmptyInput reports whether err is or wraps ErrEmptyInput.
func IsEmptyInput(err error) bool { return errors.Is(err, ErrEmptyInput) }

// IsProviderFailure reports whether err is or wraps ErrProviderFailure.
func IsProviderFailure(err error) bool { return errors.Is(err, ErrProviderFailure) }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsVersionConflict reports whether err is or wraps ErrVersionConflict.
func IsVersionConflict(err error) bool { return errors.Is(err, ErrVersionConflict) }

// IsRateLimitExceeded reports whether err is or wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool { return errors.Is(err, ErrRateLimitExceeded) }

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
