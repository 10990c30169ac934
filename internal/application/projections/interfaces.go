package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/attendance"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	domainAttendance "gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dates"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainSlot "gymdesk/internal/domain/slot"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id int64) (domainMember.Member, error)
	List(ctx context.Context, filter member.ListFilter) ([]member.Row, error)
	Summary(ctx context.Context, today string, soonDays int) (member.Summary, error)
}

// PaymentStore interface for payment queries.
type PaymentStore interface {
	ListByMember(ctx context.Context, memberID int64) ([]domainPayment.Payment, error)
	List(ctx context.Context, filter payment.ListFilter) ([]payment.Row, error)
	RevenueByMonth(ctx context.Context, filter payment.ListFilter) ([]payment.MonthTotal, error)
	ListOverdue(ctx context.Context, today string) ([]payment.Row, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	LoadForDate(ctx context.Context, date string) ([]domainAttendance.Row, error)
	List(ctx context.Context, filter attendance.ListFilter) ([]attendance.ReportRow, error)
}

// SlotStore interface for slot queries.
type SlotStore interface {
	List(ctx context.Context) ([]domainSlot.Slot, error)
	ListByMember(ctx context.Context, memberID int64) ([]domainSlot.Slot, error)
}

// TrainerStore interface for trainer queries.
type TrainerStore interface {
	GetByID(ctx context.Context, id int64) (domainTrainer.Trainer, error)
	List(ctx context.Context) ([]domainTrainer.Trainer, error)
	History(ctx context.Context, trainerID int64) ([]domainTrainer.HistoryEntry, error)
}

// clock returns today's date as both a time and yyyy-MM-dd text.
func clock(now func() time.Time) (time.Time, string) {
	if now == nil {
		now = time.Now
	}
	today := dates.Today(now())
	return today, dates.Format(today)
}

// checkRange validates optional yyyy-MM-dd bounds.
func checkRange(from, to string) error {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := dates.Parse(d); err != nil {
			return err
		}
	}
	return nil
}
