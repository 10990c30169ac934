// Package apperr defines the error kinds every operation surfaces to callers.
// Operations wrap one of the sentinels below so presentation code can branch
// with errors.Is without knowing anything about the store.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrGenderMismatch = errors.New("gender mismatch")
	ErrNotFound       = errors.New("not found")
)

// Validation returns an error of kind ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflict returns an error of kind ErrConflict.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// GenderMismatch returns an error of kind ErrGenderMismatch.
func GenderMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGenderMismatch, fmt.Sprintf(format, args...))
}

// NotFound returns an error of kind ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Kind reports which sentinel err wraps, or nil for an unclassified failure.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrConflict, ErrGenderMismatch, ErrNotFound} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
