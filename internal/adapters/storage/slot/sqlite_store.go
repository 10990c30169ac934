package slot

import (
	"context"
	"fmt"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/apperr"
	domain "gymdesk/internal/domain/slot"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new slot store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a Slot.
// PRE: value has been validated
func (s *SQLiteStore) Create(ctx context.Context, value domain.Slot) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO slots (start_time, end_time, gender) VALUES (?, ?, ?)",
		value.StartTime, value.EndTime, value.Gender,
	)
	if err != nil {
		return 0, fmt.Errorf("create slot: %w", err)
	}
	return res.LastInsertId()
}

// GetByID retrieves a Slot by its ID.
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Slot, error) {
	var sl domain.Slot
	err := s.db.QueryRowContext(ctx,
		"SELECT id, start_time, end_time, gender FROM slots WHERE id = ?", id,
	).Scan(&sl.ID, &sl.StartTime, &sl.EndTime, &sl.Gender)
	if err != nil {
		return domain.Slot{}, storage.NotFoundOr(err, "get slot", "slot", id)
	}
	return sl, nil
}

func (s *SQLiteStore) query(ctx context.Context, op, query string, args ...any) ([]domain.Slot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []domain.Slot
	for rows.Next() {
		var sl domain.Slot
		if err := rows.Scan(&sl.ID, &sl.StartTime, &sl.EndTime, &sl.Gender); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, sl)
	}
	return list, rows.Err()
}

// List returns every slot ordered by start time.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Slot, error) {
	return s.query(ctx, "list slots", "SELECT id, start_time, end_time, gender FROM slots ORDER BY start_time, id")
}

// Assign records that a member trains in a slot.
// PRE: Gender compatibility was checked by the caller
// POST: Assignment stored; ErrConflict if it already exists, ErrNotFound if either side is missing
func (s *SQLiteStore) Assign(ctx context.Context, memberID, slotID int64) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO member_slots (member_id, slot_id) VALUES (?, ?)", memberID, slotID)
	switch {
	case storage.IsUniqueViolation(err):
		return apperr.Conflict("member %d is already assigned to slot %d", memberID, slotID)
	case storage.IsForeignKeyViolation(err):
		return apperr.NotFound("member %d or slot %d", memberID, slotID)
	case err != nil:
		return fmt.Errorf("assign slot: %w", err)
	}
	return nil
}

// Unassign removes one assignment.
// POST: Assignment removed or ErrNotFound
func (s *SQLiteStore) Unassign(ctx context.Context, memberID, slotID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member_slots WHERE member_id = ? AND slot_id = ?", memberID, slotID)
	if err != nil {
		return fmt.Errorf("unassign slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("assignment of member %d to slot %d", memberID, slotID)
	}
	return nil
}

// ListByMember returns the slots a member is assigned to, by start time.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID int64) ([]domain.Slot, error) {
	return s.query(ctx, "list member slots", `
		SELECT s.id, s.start_time, s.end_time, s.gender
		FROM member_slots ms JOIN slots s ON s.id = ms.slot_id
		WHERE ms.member_id = ?
		ORDER BY s.start_time, s.id`, memberID)
}

// DeleteAssignmentsByMember removes every assignment of a member.
func (s *SQLiteStore) DeleteAssignmentsByMember(ctx context.Context, memberID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member_slots WHERE member_id = ?", memberID)
	if err != nil {
		return 0, fmt.Errorf("delete member slots: %w", err)
	}
	return res.RowsAffected()
}
