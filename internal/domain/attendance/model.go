package attendance

import (
	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/dates"
)

// Attendance statuses.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance is one member's mark for one calendar date.
// (MemberID, Date) is unique; re-marking overwrites Status.
type Attendance struct {
	ID       int64
	MemberID int64
	Date     string // YYYY-MM-DD format
	Status   string
}

// Entry is a presence flag submitted for a member on the day being edited.
type Entry struct {
	MemberID int64
	Present  bool
}

// Row is what the day sheet shows for one member.
type Row struct {
	MemberID int64
	Name     string
	Status   string
}

// StatusFor maps a present flag to its stored status.
func StatusFor(present bool) string {
	if present {
		return StatusPresent
	}
	return StatusAbsent
}

// Validate checks if the Attendance has valid data.
// PRE: Attendance struct is initialized
// POST: Returns ErrValidation if validation fails, nil otherwise
// INVARIANT: MemberID must be set, Status must be Present or Absent
func (a *Attendance) Validate() error {
	if a.MemberID <= 0 {
		return apperr.Validation("attendance must be associated with a member")
	}
	if _, err := dates.Parse(a.Date); err != nil {
		return err
	}
	if a.Status != StatusPresent && a.Status != StatusAbsent {
		return apperr.Validation("status must be Present or Absent, got %q", a.Status)
	}
	return nil
}

// IsPresent returns true if the member was marked present.
func (r Row) IsPresent() bool {
	return r.Status == StatusPresent
}
