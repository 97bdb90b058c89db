package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Course errors
var (
	ErrCourseNotFound      = fmt.Errorf("course not found: %w", ErrResourceNotFound)
	ErrCourseAlreadyExists = fmt.Errorf("course with this id already exists: %w", ErrResourceAlreadyExists)
)

// ValidationError carries per-field messages for a rejected payload.
// It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field message was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return ErrValidationFailed.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, ", ")
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// FieldError is a shorthand for a ValidationError with a single message
func FieldError(field, message string) *ValidationError {
	return NewValidationError().Add(field, message)
}
