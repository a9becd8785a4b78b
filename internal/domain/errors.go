package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)

// FieldError reports the first field of an entity that failed validation.
// Field is a dotted path into the entity (e.g. "weeks[2].actions[0].day").
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes FieldError match ErrValidation with errors.Is, so callers can
// treat all field failures as validation failures without inspecting paths.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// newFieldError builds a FieldError for a dotted field path.
func newFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}
