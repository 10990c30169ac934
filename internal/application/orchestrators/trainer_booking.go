package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/trainer"
)

// BookingDeps holds dependencies shared by the booking operations.
type BookingDeps struct {
	Tx      Transactor
	Now     func() time.Time
	Refresh RefreshFunc
}

// BookInput carries input for Book.
type BookInput struct {
	TrainerID   int64
	MemberID    int64
	SlotID      int64
	BookingDate string
}

// ExecuteBook books a trainer for a member in a slot on one date.
// PRE: Trainer, member and slot exist
// POST: Booking stored; trainer is Training when BookingDate is today
// INVARIANT: At most one booking per (trainer, slot, date), enforced by the store
// INVARIANT: Member gender equals slot gender unless the slot is Mixed
func ExecuteBook(ctx context.Context, input BookInput, deps BookingDeps) (int64, error) {
	b := trainer.Booking{
		TrainerID:   input.TrainerID,
		MemberID:    input.MemberID,
		SlotID:      input.SlotID,
		BookingDate: input.BookingDate,
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	today := todayString(deps.Now)

	var id int64
	var statusChanged bool
	err := deps.Tx.InTx(ctx, "book_trainer", func(s Stores) error {
		m, err := s.Members.GetByID(ctx, b.MemberID)
		if err != nil {
			return err
		}
		sl, err := s.Slots.GetByID(ctx, b.SlotID)
		if err != nil {
			return err
		}
		if !sl.Admits(m.Gender) {
			return apperr.GenderMismatch("member %d is %s but slot %s is for %s", m.ID, m.Gender, sl.Label(), sl.Gender)
		}
		t, err := s.Trainers.GetByID(ctx, b.TrainerID)
		if err != nil {
			return err
		}
		if id, err = s.Trainers.CreateBooking(ctx, b); err != nil {
			return err
		}
		next, changed := trainer.StatusAfterBooking(t.Status, b.BookingDate, today)
		if !changed {
			return nil
		}
		statusChanged = true
		return s.Trainers.SetStatus(ctx, t.ID, next)
	})
	if err != nil {
		slog.Info("booking_event", "event", "booking_rejected", "trainer_id", b.TrainerID, "slot_id", b.SlotID,
			"date", b.BookingDate, "reason", err.Error())
		return 0, err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", id, "trainer_id", b.TrainerID,
		"member_id", b.MemberID, "slot_id", b.SlotID, "date", b.BookingDate, "status_changed", statusChanged)
	notify(ctx, "book_trainer", deps.Refresh)
	return id, nil
}

// ExecuteRelease clears a trainer's bookings for today and marks the trainer
// Available, whatever else is booked on other dates.
// PRE: Trainer exists
// POST: No booking for (trainer, today) remains; status = Available
func ExecuteRelease(ctx context.Context, trainerID int64, deps BookingDeps) (int64, error) {
	today := todayString(deps.Now)
	var removed int64
	err := deps.Tx.InTx(ctx, "release_trainer", func(s Stores) error {
		if _, err := s.Trainers.GetByID(ctx, trainerID); err != nil {
			return err
		}
		var err error
		if removed, err = s.Trainers.DeleteBookingsOn(ctx, trainerID, today); err != nil {
			return err
		}
		return s.Trainers.SetStatus(ctx, trainerID, trainer.StatusAvailable)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("booking_event", "event", "trainer_released", "trainer_id", trainerID, "removed", removed)
	notify(ctx, "release_trainer", deps.Refresh)
	return removed, nil
}

// ExecuteCancelBooking deletes one booking. Cancelling today's booking sets
// the trainer back to Available; other dates leave the status alone.
// PRE: Booking exists
// POST: Booking removed
func ExecuteCancelBooking(ctx context.Context, bookingID int64, deps BookingDeps) error {
	today := todayString(deps.Now)
	var b trainer.Booking
	err := deps.Tx.InTx(ctx, "cancel_booking", func(s Stores) error {
		var err error
		if b, err = s.Trainers.GetBooking(ctx, bookingID); err != nil {
			return err
		}
		if err := s.Trainers.DeleteBooking(ctx, bookingID); err != nil {
			return err
		}
		return resetIfToday(ctx, s, b, today)
	})
	if err != nil {
		return err
	}

	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", bookingID,
		"trainer_id", b.TrainerID, "date", b.BookingDate)
	notify(ctx, "cancel_booking", deps.Refresh)
	return nil
}

// ExecuteCancelMemberBookingToday removes a member's booking dated today and
// sets its trainer back to Available.
// PRE: Member has a booking today
// POST: No booking for (member, today) remains; ErrNotFound when there was none
func ExecuteCancelMemberBookingToday(ctx context.Context, memberID int64, deps BookingDeps) (int, error) {
	today := todayString(deps.Now)
	var cancelled int
	err := deps.Tx.InTx(ctx, "cancel_member_booking_today", func(s Stores) error {
		bookings, err := s.Trainers.BookingsByMemberOn(ctx, memberID, today)
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			return apperr.NotFound("booking for member %d on %s", memberID, today)
		}
		for _, b := range bookings {
			if err := s.Trainers.DeleteBooking(ctx, b.ID); err != nil {
				return err
			}
			if err := resetIfToday(ctx, s, b, today); err != nil {
				return err
			}
		}
		cancelled = len(bookings)
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("booking_event", "event", "member_booking_cancelled", "member_id", memberID, "cancelled", cancelled)
	notify(ctx, "cancel_member_booking_today", deps.Refresh)
	return cancelled, nil
}

func resetIfToday(ctx context.Context, s Stores, b trainer.Booking, today string) error {
	t, err := s.Trainers.GetByID(ctx, b.TrainerID)
	if err != nil {
		return err
	}
	next, changed := trainer.StatusAfterCancel(t.Status, b.BookingDate, today)
	if !changed {
		return nil
	}
	return s.Trainers.SetStatus(ctx, t.ID, next)
}
