package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"gymdesk/internal/domain/apperr"
)

// TestKind verifies wrapped errors keep their kind through further wrapping.
func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", apperr.Validation("amount %q", "x"), apperr.ErrValidation},
		{"conflict wrapped", fmt.Errorf("book: %w", apperr.Conflict("taken")), apperr.ErrConflict},
		{"gender", apperr.GenderMismatch("Female in Male slot"), apperr.ErrGenderMismatch},
		{"not found", apperr.NotFound("member %d", 4), apperr.ErrNotFound},
		{"plain", errors.New("disk full"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestValidationMessage verifies the formatted detail is kept in the message.
func TestValidationMessage(t *testing.T) {
	err := apperr.Validation("amount must be positive, got %v", -5)
	want := "validation failed: amount must be positive, got -5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
