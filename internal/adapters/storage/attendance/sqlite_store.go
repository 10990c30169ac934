package attendance

import (
	"context"
	"fmt"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/apperr"
	domain "gymdesk/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new attendance store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// LoadForDate returns every member with their mark for date.
// PRE: date is yyyy-MM-dd
// POST: One row per member ordered by name case-insensitively; unmarked members are Absent
func (s *SQLiteStore) LoadForDate(ctx context.Context, date string) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, COALESCE(a.status, ?)
		FROM members m
		LEFT JOIN attendance a ON a.member_id = m.id AND a.date = ?
		ORDER BY m.name COLLATE NOCASE, m.id`, domain.StatusAbsent, date)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	defer rows.Close()

	var list []domain.Row
	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(&r.MemberID, &r.Name, &r.Status); err != nil {
			return nil, fmt.Errorf("load attendance: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// Upsert writes the mark for (member, date), overwriting any earlier status.
// PRE: value has been validated
// POST: Exactly one row exists for (member, date) or ErrNotFound for an unknown member
func (s *SQLiteStore) Upsert(ctx context.Context, value domain.Attendance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (member_id, date, status) VALUES (?, ?, ?)
		ON CONFLICT(member_id, date) DO UPDATE SET status = excluded.status`,
		value.MemberID, value.Date, value.Status,
	)
	if storage.IsForeignKeyViolation(err) {
		return apperr.NotFound("member %d", value.MemberID)
	}
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// List returns stored marks within the filter range, newest date first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]ReportRow, error) {
	query := `
		SELECT a.member_id, m.name, a.date, a.status
		FROM attendance a JOIN members m ON m.id = a.member_id
		WHERE 1=1`
	var args []any
	if filter.From != "" {
		query += " AND a.date >= ?"
		args = append(args, filter.From)
	}
	if filter.To != "" {
		query += " AND a.date <= ?"
		args = append(args, filter.To)
	}
	query += " ORDER BY a.date DESC, m.name COLLATE NOCASE"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("attendance report: %w", err)
	}
	defer rows.Close()

	var list []ReportRow
	for rows.Next() {
		var r ReportRow
		if err := rows.Scan(&r.MemberID, &r.MemberName, &r.Date, &r.Status); err != nil {
			return nil, fmt.Errorf("attendance report: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// DeleteByMember removes every mark of a member.
func (s *SQLiteStore) DeleteByMember(ctx context.Context, memberID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM attendance WHERE member_id = ?", memberID)
	if err != nil {
		return 0, fmt.Errorf("delete member attendance: %w", err)
	}
	return res.RowsAffected()
}
