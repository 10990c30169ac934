package member

import (
	"strings"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/dates"
	"gymdesk/internal/domain/validation"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Gender values a member may carry.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Membership plans offered by the member form. Plans are free text in the
// store; these are the defaults the front desk picks from.
const (
	PlanMonthly   = "Monthly"
	PlanQuarterly = "Quarterly"
	PlanYearly    = "Yearly"
)

// Filter values understood by list queries.
const (
	FilterAll     = "All"
	FilterActive  = "Active"
	FilterExpired = "Expired"
)

// DefaultRenewalDays is how far one payment extends a membership.
const DefaultRenewalDays = 30

// DefaultExpiringSoonDays is the warning window before expiry.
const DefaultExpiringSoonDays = 7

// Expiry is the classification of a membership relative to today.
type Expiry string

// Expiry classifications.
const (
	ExpiryActive       Expiry = "Active"
	ExpiryExpiringSoon Expiry = "ExpiringSoon"
	ExpiryExpired      Expiry = "Expired"
	// ExpiryNone marks a member that has never had an end date.
	ExpiryNone Expiry = "None"
)

// Member holds state for the concept.
type Member struct {
	ID        int64
	Name      string `validate:"required,max=100"`
	Phone     string `validate:"max=40"`
	Email     string `validate:"omitempty,email,max=254"`
	Address   string `validate:"max=200"`
	Gender    string `validate:"oneof=Male Female Other"`
	StartDate string
	EndDate   string // empty when the member has no end date yet
	Plan      string `validate:"max=40"`
	Photo     string // optional path or reference, never read by the core
}

// Dependents counts the rows that reference a member.
type Dependents struct {
	Payments        int
	Attendance      int
	Bookings        int
	SlotAssignments int
}

// Any reports whether at least one dependent row exists.
func (d Dependents) Any() bool {
	return d.Payments+d.Attendance+d.Bookings+d.SlotAssignments > 0
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns ErrValidation if validation fails, nil otherwise
// INVARIANT: StartDate and EndDate, when present, are real yyyy-MM-dd dates
func (m *Member) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	if err := validation.Struct(m); err != nil {
		return err
	}
	if m.StartDate != "" {
		if _, err := dates.Parse(m.StartDate); err != nil {
			return err
		}
	}
	if m.EndDate != "" {
		if _, err := dates.Parse(m.EndDate); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNew applies the creation-time rules on top of Validate.
// PRE: Member has not been persisted yet
// POST: Returns ErrValidation if the start date is missing or end precedes start
// INVARIANT: end_date >= start_date at creation
func (m *Member) ValidateNew() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.StartDate == "" {
		return apperr.Validation("start date is required")
	}
	if m.EndDate != "" && m.EndDate < m.StartDate {
		return apperr.Validation("end date %s is before start date %s", m.EndDate, m.StartDate)
	}
	return nil
}

// Classify returns the member's expiry state for today.
// INVARIANT: Member fields are not mutated
func (m *Member) Classify(today time.Time, soonDays int) Expiry {
	if m.EndDate == "" {
		return ExpiryNone
	}
	end, err := dates.Parse(m.EndDate)
	if err != nil {
		return ExpiryNone
	}
	return ClassifyWithin(end, today, soonDays)
}

// Classify maps an end date to Active, ExpiringSoon or Expired using the
// default seven-day warning window.
func Classify(end, today time.Time) Expiry {
	return ClassifyWithin(end, today, DefaultExpiringSoonDays)
}

// ClassifyWithin is Classify with an explicit warning window.
// PRE: soonDays >= 0
// POST: Returns exactly one of Active, ExpiringSoon, Expired
func ClassifyWithin(end, today time.Time, soonDays int) Expiry {
	left := dates.DaysBetween(today, end)
	switch {
	case left < 0:
		return ExpiryExpired
	case left <= soonDays:
		return ExpiryExpiringSoon
	default:
		return ExpiryActive
	}
}

// DaysLeft returns the whole days between today and the end date, negative once expired.
// PRE: EndDate is set
func (m *Member) DaysLeft(today time.Time) (int, error) {
	end, err := dates.Parse(m.EndDate)
	if err != nil {
		return 0, err
	}
	return dates.DaysBetween(today, end), nil
}

// RenewedEndDate computes the end date after a payment on paidDate.
// Renewal extends from whichever is later, the current end date or the
// payment date, so an early payment never loses days and a late one never
// back-dates the membership.
// PRE: paidDate is a valid date; currentEnd is empty or a valid date; days > 0
// POST: Returns max(currentEnd, paidDate) + days
func RenewedEndDate(currentEnd, paidDate string, days int) (string, error) {
	paid, err := dates.Parse(paidDate)
	if err != nil {
		return "", err
	}
	base := paid
	if currentEnd != "" {
		end, err := dates.Parse(currentEnd)
		if err != nil {
			return "", err
		}
		if end.After(paid) {
			base = end
		}
	}
	return dates.Format(base.AddDate(0, 0, days)), nil
}

// ValidStatusFilter reports whether f is a recognised status filter.
func ValidStatusFilter(f string) bool {
	return f == FilterAll || f == FilterActive || f == FilterExpired || f == ""
}
