package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found in the tenant scope.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a unique key collision that could not be resolved locally.
var ErrConflict = errors.New("resource already exists")

// ErrInvalidState indicates the operation is not allowed for the entity's current state.
var ErrInvalidState = errors.New("invalid state")

// ValidationError carries field-keyed messages. errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Add records another field message and returns the receiver.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
	return e
}

// Validation builds a ValidationError for a single field.
func Validation(field, msg string) error {
	return (&ValidationError{}).Add(field, msg)
}

// StateError reports an operation that the entity's state forbids.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

func State(format string, args ...any) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the name of the missing resource.
func NotFound(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrNotFound)
}

// Conflict wraps ErrConflict with the colliding resource and field.
func Conflict(resource, field string) error {
	return fmt.Errorf("%s with this %s already exists: %w", resource, field, ErrConflict)
}
