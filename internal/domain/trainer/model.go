package trainer

import (
	"strings"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/dates"
	"gymdesk/internal/domain/validation"
)

// Trainer statuses. Status is a cached projection of "has a booking today",
// not a record of overall commitments.
const (
	StatusAvailable = "Available"
	StatusTraining  = "Training"
)

// Trainer holds state for the concept.
type Trainer struct {
	ID             int64
	Name           string `validate:"required,max=100"`
	Phone          string `validate:"max=40"`
	Specialization string `validate:"max=100"`
	Status         string `validate:"oneof=Available Training"`
}

// Booking assigns a trainer, member and slot to one calendar date.
// (TrainerID, SlotID, BookingDate) is unique.
type Booking struct {
	ID          int64
	TrainerID   int64
	MemberID    int64
	SlotID      int64
	BookingDate string
}

// HistoryEntry is a booking joined with the names shown in a trainer's history.
type HistoryEntry struct {
	Booking
	MemberName string
	SlotLabel  string
}

// Validate checks if the Trainer has valid data.
// PRE: Trainer struct is populated
// POST: Returns nil if valid, ErrValidation otherwise
func (t *Trainer) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Status == "" {
		t.Status = StatusAvailable
	}
	return validation.Struct(t)
}

// IsTraining returns true if the trainer is marked busy today.
// INVARIANT: Status field is not mutated
func (t *Trainer) IsTraining() bool {
	return t.Status == StatusTraining
}

// StatusAfterBooking returns the status a trainer moves to after a booking
// on bookingDate. Only a booking for today flips the trainer to Training;
// future bookings leave the current status alone.
// PRE: today is yyyy-MM-dd
// POST: Returns the new status and whether it changed
func StatusAfterBooking(current, bookingDate, today string) (string, bool) {
	if bookingDate == today && current != StatusTraining {
		return StatusTraining, true
	}
	return current, false
}

// StatusAfterCancel returns the status after removing a booking dated bookingDate.
// PRE: today is yyyy-MM-dd
// POST: Cancelling today's booking frees the trainer; other dates change nothing
func StatusAfterCancel(current, bookingDate, today string) (string, bool) {
	if bookingDate == today && current != StatusAvailable {
		return StatusAvailable, true
	}
	return current, false
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, ErrValidation otherwise
func (b *Booking) Validate() error {
	if b.TrainerID <= 0 || b.MemberID <= 0 || b.SlotID <= 0 {
		return apperr.Validation("booking needs a trainer, a member and a slot")
	}
	if _, err := dates.Parse(b.BookingDate); err != nil {
		return err
	}
	return nil
}
