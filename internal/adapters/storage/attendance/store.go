package attendance

import (
	"context"

	domain "gymdesk/internal/domain/attendance"
)

// Store persists Attendance state.
type Store interface {
	LoadForDate(ctx context.Context, date string) ([]domain.Row, error)
	Upsert(ctx context.Context, value domain.Attendance) error
	List(ctx context.Context, filter ListFilter) ([]ReportRow, error)
	DeleteByMember(ctx context.Context, memberID int64) (int64, error)
}

// ListFilter bounds the attendance report by date. Empty bounds are open.
type ListFilter struct {
	From string
	To   string
}

// ReportRow is one stored mark with the member's name.
type ReportRow struct {
	MemberID   int64
	MemberName string
	Date       string
	Status     string
}
