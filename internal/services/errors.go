package services

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors. Every one of them leaves state unchanged.
var (
	// ErrValidation indicates missing or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a season status change that is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState indicates the operation is not allowed from the current state
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateIntegration indicates the question is already in the merchant's bank
	ErrDuplicateIntegration = errors.New("question already integrated")

	// ErrSeasonNotFound indicates the season does not exist for the merchant
	ErrSeasonNotFound = errors.New("season not found")
)

// ValidationError lists the rejected fields with a user-facing message each
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records another rejected field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasErrors reports whether any field was rejected
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error { return ErrValidation }

// FirstField returns the alphabetically first rejected field, for inline highlighting
func (e *ValidationError) FirstField() (string, string) {
	if e == nil {
		return "", ""
	}
	first := ""
	for name := range e.Fields {
		if first == "" || name < first {
			first = name
		}
	}
	return first, e.Fields[first]
}
