package trainer

import (
	"context"
	"fmt"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/apperr"
	domainSlot "gymdesk/internal/domain/slot"
	domain "gymdesk/internal/domain/trainer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new trainer store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a Trainer.
// PRE: value has been validated
func (s *SQLiteStore) Create(ctx context.Context, value domain.Trainer) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO trainers (name, phone, specialization, status) VALUES (?, ?, ?, ?)",
		value.Name, value.Phone, value.Specialization, value.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("create trainer: %w", err)
	}
	return res.LastInsertId()
}

// GetByID retrieves a Trainer by its ID.
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Trainer, error) {
	var t domain.Trainer
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, specialization, status FROM trainers WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Phone, &t.Specialization, &t.Status)
	if err != nil {
		return domain.Trainer{}, storage.NotFoundOr(err, "get trainer", "trainer", id)
	}
	return t, nil
}

// List returns all trainers ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Trainer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phone, specialization, status FROM trainers ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	var list []domain.Trainer
	for rows.Next() {
		var t domain.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Specialization, &t.Status); err != nil {
			return nil, fmt.Errorf("list trainers: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// SetStatus overwrites the cached Available/Training flag.
// POST: Status persisted or ErrNotFound
func (s *SQLiteStore) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE trainers SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("set trainer status: %w", err)
	}
	return storage.RequireAffected(res, "trainer", id)
}

// CreateBooking inserts a booking. The (trainer, slot, date) unique
// constraint is what rejects a double booking, including concurrent ones.
// PRE: value has been validated
// POST: Row inserted; ErrConflict on a duplicate, ErrNotFound on a dangling reference
func (s *SQLiteStore) CreateBooking(ctx context.Context, value domain.Booking) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO trainer_bookings (trainer_id, member_id, slot_id, booking_date) VALUES (?, ?, ?, ?)",
		value.TrainerID, value.MemberID, value.SlotID, value.BookingDate,
	)
	switch {
	case storage.IsUniqueViolation(err):
		return 0, apperr.Conflict("trainer %d is already booked for slot %d on %s",
			value.TrainerID, value.SlotID, value.BookingDate)
	case storage.IsForeignKeyViolation(err):
		return 0, apperr.NotFound("trainer %d, member %d or slot %d", value.TrainerID, value.MemberID, value.SlotID)
	case err != nil:
		return 0, fmt.Errorf("create booking: %w", err)
	}
	return res.LastInsertId()
}

// GetBooking retrieves a booking by its ID.
// POST: Returns the booking or ErrNotFound
func (s *SQLiteStore) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	var b domain.Booking
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trainer_id, member_id, slot_id, booking_date FROM trainer_bookings WHERE id = ?", id,
	).Scan(&b.ID, &b.TrainerID, &b.MemberID, &b.SlotID, &b.BookingDate)
	if err != nil {
		return domain.Booking{}, storage.NotFoundOr(err, "get booking", "booking", id)
	}
	return b, nil
}

// DeleteBooking removes one booking.
// POST: Row removed or ErrNotFound
func (s *SQLiteStore) DeleteBooking(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trainer_bookings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return storage.RequireAffected(res, "booking", id)
}

// DeleteBookingsOn removes every booking of a trainer on one date and
// returns how many went.
func (s *SQLiteStore) DeleteBookingsOn(ctx context.Context, trainerID int64, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM trainer_bookings WHERE trainer_id = ? AND booking_date = ?", trainerID, date)
	if err != nil {
		return 0, fmt.Errorf("delete trainer bookings: %w", err)
	}
	return res.RowsAffected()
}

// History returns all bookings of a trainer, past and future, oldest first.
func (s *SQLiteStore) History(ctx context.Context, trainerID int64) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.trainer_id, b.member_id, b.slot_id, b.booking_date,
			m.name, s.start_time, s.end_time, s.gender
		FROM trainer_bookings b
		JOIN members m ON m.id = b.member_id
		JOIN slots s ON s.id = b.slot_id
		WHERE b.trainer_id = ?
		ORDER BY b.booking_date, s.start_time, b.id`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("trainer history: %w", err)
	}
	defer rows.Close()

	var list []domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		var sl domainSlot.Slot
		if err := rows.Scan(&h.ID, &h.TrainerID, &h.MemberID, &h.SlotID, &h.BookingDate,
			&h.MemberName, &sl.StartTime, &sl.EndTime, &sl.Gender); err != nil {
			return nil, fmt.Errorf("trainer history: %w", err)
		}
		h.SlotLabel = sl.Label()
		list = append(list, h)
	}
	return list, rows.Err()
}

// BookingsByMemberOn returns a member's bookings on one date.
func (s *SQLiteStore) BookingsByMemberOn(ctx context.Context, memberID int64, date string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trainer_id, member_id, slot_id, booking_date
		FROM trainer_bookings WHERE member_id = ? AND booking_date = ?
		ORDER BY id`, memberID, date)
	if err != nil {
		return nil, fmt.Errorf("member bookings: %w", err)
	}
	defer rows.Close()

	var list []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.TrainerID, &b.MemberID, &b.SlotID, &b.BookingDate); err != nil {
			return nil, fmt.Errorf("member bookings: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// DeleteBookingsByMember removes every booking of a member.
func (s *SQLiteStore) DeleteBookingsByMember(ctx context.Context, memberID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trainer_bookings WHERE member_id = ?", memberID)
	if err != nil {
		return 0, fmt.Errorf("delete member bookings: %w", err)
	}
	return res.RowsAffected()
}
