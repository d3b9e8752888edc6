package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden means the entity exists but belongs to another user.
	ErrForbidden = errors.New("not allowed")

	// ErrValidationFailed matches every *ValidationError under errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports a rejected input field. Message is safe to show to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidationFailed) true for any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
