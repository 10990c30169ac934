package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/dates"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/slot"
	"gymdesk/internal/domain/trainer"
)

// MemberStore is the member persistence an operation may write through.
type MemberStore interface {
	Create(ctx context.Context, m member.Member) (int64, error)
	GetByID(ctx context.Context, id int64) (member.Member, error)
	Update(ctx context.Context, m member.Member) error
	SetEndDate(ctx context.Context, id int64, endDate string) error
	Delete(ctx context.Context, id int64) error
	CountDependents(ctx context.Context, id int64) (member.Dependents, error)
}

// PaymentStore is the payment persistence an operation may write through.
type PaymentStore interface {
	Create(ctx context.Context, p payment.Payment) (int64, error)
	DeleteByMember(ctx context.Context, memberID int64) (int64, error)
}

// AttendanceStore is the attendance persistence an operation may write through.
type AttendanceStore interface {
	Upsert(ctx context.Context, a attendance.Attendance) error
	DeleteByMember(ctx context.Context, memberID int64) (int64, error)
}

// SlotStore is the slot persistence an operation may write through.
type SlotStore interface {
	Create(ctx context.Context, s slot.Slot) (int64, error)
	GetByID(ctx context.Context, id int64) (slot.Slot, error)
	Assign(ctx context.Context, memberID, slotID int64) error
	Unassign(ctx context.Context, memberID, slotID int64) error
	DeleteAssignmentsByMember(ctx context.Context, memberID int64) (int64, error)
}

// TrainerStore is the trainer and booking persistence an operation may write through.
type TrainerStore interface {
	Create(ctx context.Context, t trainer.Trainer) (int64, error)
	GetByID(ctx context.Context, id int64) (trainer.Trainer, error)
	SetStatus(ctx context.Context, id int64, status string) error
	CreateBooking(ctx context.Context, b trainer.Booking) (int64, error)
	GetBooking(ctx context.Context, id int64) (trainer.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	DeleteBookingsOn(ctx context.Context, trainerID int64, date string) (int64, error)
	BookingsByMemberOn(ctx context.Context, memberID int64, date string) ([]trainer.Booking, error)
	DeleteBookingsByMember(ctx context.Context, memberID int64) (int64, error)
}

// AccountStore is the user persistence login and seeding need.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (account.User, error)
	Create(ctx context.Context, u account.User) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Stores bundles every store bound to one unit of work.
type Stores struct {
	Members    MemberStore
	Payments   PaymentStore
	Attendance AttendanceStore
	Slots      SlotStore
	Trainers   TrainerStore
	Accounts   AccountStore
}

// Transactor runs fn with stores that all write through one transaction.
// If fn returns an error nothing fn wrote is kept.
type Transactor interface {
	InTx(ctx context.Context, op string, fn func(s Stores) error) error
}

// RefreshFunc is called after a successful write so a front end can reload.
type RefreshFunc func(ctx context.Context) error

// notify runs the refresh hook. Its failure never fails the write that
// already committed.
func notify(ctx context.Context, op string, refresh RefreshFunc) {
	if refresh == nil {
		return
	}
	if err := refresh(ctx); err != nil {
		slog.Warn("refresh_event", "event", "refresh_failed", "op", op, "error", err)
	}
}

// todayString returns the calendar date of now, defaulting to time.Now.
func todayString(now func() time.Time) string {
	if now == nil {
		return dates.TodayString(time.Now())
	}
	return dates.TodayString(now())
}
