package payment

import (
	"math"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/dates"
)

// DefaultDueSoonDays is the window in which an upcoming due date is flagged.
const DefaultDueSoonDays = 3

// Status is the state of a payment's due date relative to today.
type Status string

// Payment statuses used by reports.
const (
	StatusOK      Status = "OK"
	StatusDueSoon Status = "DueSoon"
	StatusOverdue Status = "Overdue"
	StatusUnknown Status = "Unknown"
)

// Payment holds state for the concept.
type Payment struct {
	ID       int64
	MemberID int64
	Amount   float64
	PaidDate string
	DueDate  string
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns ErrValidation if validation fails, nil otherwise
// INVARIANT: Amount > 0
func (p *Payment) Validate() error {
	if p.MemberID <= 0 {
		return apperr.Validation("payment must reference a member")
	}
	if !(p.Amount > 0) || math.IsInf(p.Amount, 0) {
		return apperr.Validation("amount must be positive, got %v", p.Amount)
	}
	if _, err := dates.Parse(p.PaidDate); err != nil {
		return err
	}
	if p.DueDate != "" {
		if _, err := dates.Parse(p.DueDate); err != nil {
			return err
		}
	}
	return nil
}

// ParseAmount reads a form-entered amount.
// PRE: none
// POST: Returns the amount, or ErrValidation when it is not a positive number
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperr.Validation("amount cannot be empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Validation("amount %q is not a number", s)
	}
	if v <= 0 {
		return 0, apperr.Validation("amount must be positive, got %v", v)
	}
	return v, nil
}

// DueStatus classifies the payment's due date against today.
// INVARIANT: Payment fields are not mutated
func (p *Payment) DueStatus(today time.Time, soonDays int) Status {
	if p.DueDate == "" {
		return StatusUnknown
	}
	due, err := dates.Parse(p.DueDate)
	if err != nil {
		return StatusUnknown
	}
	left := dates.DaysBetween(today, due)
	switch {
	case left < 0:
		return StatusOverdue
	case left <= soonDays:
		return StatusDueSoon
	default:
		return StatusOK
	}
}
