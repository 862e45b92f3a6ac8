package shared

import (
	"fmt"
	"strings"
)

// FieldError describes one offending payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every offending field of a request payload so the
// client gets a single message covering all of them at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// NewValidationError creates an empty validation error to accumulate into.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add records a failure for one field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface with one aggregated human-readable message.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
