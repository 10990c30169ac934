package trainer

import (
	"context"

	domain "gymdesk/internal/domain/trainer"
)

// Store persists Trainer state and trainer bookings.
type Store interface {
	Create(ctx context.Context, value domain.Trainer) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Trainer, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	SetStatus(ctx context.Context, id int64, status string) error

	CreateBooking(ctx context.Context, value domain.Booking) (int64, error)
	GetBooking(ctx context.Context, id int64) (domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	DeleteBookingsOn(ctx context.Context, trainerID int64, date string) (int64, error)
	History(ctx context.Context, trainerID int64) ([]domain.HistoryEntry, error)
	BookingsByMemberOn(ctx context.Context, memberID int64, date string) ([]domain.Booking, error)
	DeleteBookingsByMember(ctx context.Context, memberID int64) (int64, error)
}
