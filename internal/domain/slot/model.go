package slot

import (
	"fmt"
	"strings"

	"gymdesk/internal/domain/validation"
)

// Slot gender restrictions.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderMixed  = "Mixed"
)

// Slot is a bookable time-of-day window restricted by gender.
type Slot struct {
	ID        int64
	StartTime string `validate:"required,max=20"` // free text, usually HH:MM
	EndTime   string `validate:"required,max=20"`
	Gender    string `validate:"oneof=Male Female Mixed"`
}

// Validate checks if the Slot has valid data.
// PRE: Slot struct is populated
// POST: Returns nil if valid, ErrValidation otherwise
func (s *Slot) Validate() error {
	s.StartTime = strings.TrimSpace(s.StartTime)
	s.EndTime = strings.TrimSpace(s.EndTime)
	return validation.Struct(s)
}

// Admits reports whether a member of the given gender may use the slot.
// INVARIANT: Mixed slots admit everyone; others require an exact match
func (s *Slot) Admits(memberGender string) bool {
	return s.Gender == GenderMixed || s.Gender == memberGender
}

// Label renders the slot the way booking lists show it, e.g. "06:00-07:00 (Mixed)".
func (s *Slot) Label() string {
	return fmt.Sprintf("%s-%s (%s)", s.StartTime, s.EndTime, s.Gender)
}
