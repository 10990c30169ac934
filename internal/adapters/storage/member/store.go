package member

import (
	"context"

	domain "gymdesk/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	Create(ctx context.Context, value domain.Member) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	Update(ctx context.Context, value domain.Member) error
	SetEndDate(ctx context.Context, id int64, endDate string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]Row, error)
	Summary(ctx context.Context, today string, soonDays int) (Summary, error)
	CountDependents(ctx context.Context, id int64) (domain.Dependents, error)
}

// ListFilter carries filtering parameters for List operations.
// Empty fields and domain.FilterAll impose no constraint.
type ListFilter struct {
	Plan   string
	Status string
	Search string
	// Today anchors the status filter and the next-booking lookup (yyyy-MM-dd).
	Today string
}

// Row is a member joined with its next booking on or after ListFilter.Today.
// The Next* fields are empty when nothing is booked.
type Row struct {
	domain.Member
	NextBookingDate string
	NextTrainerName string
	NextSlotStart   string
	NextSlotEnd     string
	NextSlotGender  string
}

// HasNextBooking reports whether the row carries an upcoming booking.
func (r Row) HasNextBooking() bool {
	return r.NextBookingDate != ""
}

// Summary holds dashboard counts. ExpiringSoon members are also counted as Active.
type Summary struct {
	Total        int
	Active       int
	Expired      int
	ExpiringSoon int
	NoEndDate    int
}
