package member

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new member store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = `m.id, m.name, m.phone, m.email, m.address, m.gender,
	COALESCE(m.start_date, ''), COALESCE(m.end_date, ''), m.membership_plan, COALESCE(m.photo, '')`

func scanMember(sc interface{ Scan(...any) error }, m *domain.Member, extra ...any) error {
	dest := []any{
		&m.ID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.Gender,
		&m.StartDate, &m.EndDate, &m.Plan, &m.Photo,
	}
	return sc.Scan(append(dest, extra...)...)
}

// nullable stores empty optional text as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a Member and returns its new id.
// PRE: value has been validated
// POST: Row inserted; the returned id is assigned by the store
func (s *SQLiteStore) Create(ctx context.Context, value domain.Member) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO members (name, phone, email, address, gender, start_date, end_date, membership_plan, photo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		value.Name, value.Phone, value.Email, value.Address, value.Gender,
		nullable(value.StartDate), nullable(value.EndDate), value.Plan, nullable(value.Photo),
	)
	if err != nil {
		return 0, fmt.Errorf("create member: %w", err)
	}
	return res.LastInsertId()
}

// GetByID retrieves a Member by its ID.
// PRE: id > 0
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members m WHERE m.id = ?", id)
	var m domain.Member
	if err := scanMember(row, &m); err != nil {
		return domain.Member{}, storage.NotFoundOr(err, "get member", "member", id)
	}
	return m, nil
}

// Update overwrites the profile fields of a Member. Dates are left alone;
// only renewal moves the end date.
// PRE: value has been validated, value.ID > 0
// POST: Profile fields persisted or ErrNotFound
func (s *SQLiteStore) Update(ctx context.Context, value domain.Member) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE members SET name = ?, phone = ?, email = ?, address = ?, gender = ?, membership_plan = ?, photo = ?
		WHERE id = ?`,
		value.Name, value.Phone, value.Email, value.Address, value.Gender, value.Plan, nullable(value.Photo), value.ID,
	)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return storage.RequireAffected(res, "member", value.ID)
}

// SetEndDate moves a member's end date.
// PRE: endDate is a valid yyyy-MM-dd date
// POST: end_date updated or ErrNotFound
func (s *SQLiteStore) SetEndDate(ctx context.Context, id int64, endDate string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE members SET end_date = ? WHERE id = ?", endDate, id)
	if err != nil {
		return fmt.Errorf("set end date: %w", err)
	}
	return storage.RequireAffected(res, "member", id)
}

// Delete removes the member row only. Callers clear dependents first.
// PRE: No rows reference the member
// POST: Row removed or ErrNotFound
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return storage.RequireAffected(res, "member", id)
}

// List returns members matching every constraint in filter, each joined with
// its earliest booking on or after filter.Today, in one query.
// PRE: filter.Today is set when filter.Status is Active or Expired
// POST: Rows ordered by name, case-insensitive
// INVARIANT: Members without an end date match neither Active nor Expired
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Row, error) {
	query := `
		WITH next AS (
			SELECT b.member_id, b.booking_date, t.name AS trainer_name,
				s.start_time, s.end_time, s.gender AS slot_gender,
				ROW_NUMBER() OVER (PARTITION BY b.member_id ORDER BY b.booking_date, s.start_time, b.id) AS rn
			FROM trainer_bookings b
			JOIN trainers t ON t.id = b.trainer_id
			JOIN slots s ON s.id = b.slot_id
			WHERE b.booking_date >= ?
		)
		SELECT ` + memberColumns + `,
			COALESCE(n.booking_date, ''), COALESCE(n.trainer_name, ''),
			COALESCE(n.start_time, ''), COALESCE(n.end_time, ''), COALESCE(n.slot_gender, '')
		FROM members m
		LEFT JOIN next n ON n.member_id = m.id AND n.rn = 1
		WHERE 1=1`
	args := []any{filter.Today}

	if filter.Plan != "" && filter.Plan != domain.FilterAll {
		query += " AND m.membership_plan = ?"
		args = append(args, filter.Plan)
	}
	switch filter.Status {
	case domain.FilterActive:
		query += " AND m.end_date IS NOT NULL AND m.end_date >= ?"
		args = append(args, filter.Today)
	case domain.FilterExpired:
		query += " AND m.end_date IS NOT NULL AND m.end_date < ?"
		args = append(args, filter.Today)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query += ` AND (casefold(m.name) LIKE ? ESCAPE '\' OR casefold(m.phone) LIKE ? ESCAPE '\' OR casefold(m.email) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern, pattern)
	}
	query += " ORDER BY m.name COLLATE NOCASE, m.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := scanMember(rows, &r.Member,
			&r.NextBookingDate, &r.NextTrainerName, &r.NextSlotStart, &r.NextSlotEnd, &r.NextSlotGender,
		); err != nil {
			return nil, fmt.Errorf("list members: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// escapeLike neutralises LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Summary counts members by expiry class relative to today.
// PRE: today is yyyy-MM-dd, soonDays >= 0
// POST: Returns counts; ExpiringSoon is a subset of Active
func (s *SQLiteStore) Summary(ctx context.Context, today string, soonDays int) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN end_date >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN end_date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN end_date >= ? AND end_date <= date(?, '+' || ? || ' days') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN end_date IS NULL THEN 1 ELSE 0 END), 0)
		FROM members`,
		today, today, today, today, soonDays,
	).Scan(&sum.Total, &sum.Active, &sum.Expired, &sum.ExpiringSoon, &sum.NoEndDate)
	if err != nil {
		return Summary{}, fmt.Errorf("member summary: %w", err)
	}
	return sum, nil
}

// CountDependents counts payments, attendance, bookings and slot assignments
// that reference the member.
func (s *SQLiteStore) CountDependents(ctx context.Context, id int64) (domain.Dependents, error) {
	var d domain.Dependents
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM payments WHERE member_id = ?),
			(SELECT COUNT(*) FROM attendance WHERE member_id = ?),
			(SELECT COUNT(*) FROM trainer_bookings WHERE member_id = ?),
			(SELECT COUNT(*) FROM member_slots WHERE member_id = ?)`,
		id, id, id, id,
	).Scan(&d.Payments, &d.Attendance, &d.Bookings, &d.SlotAssignments)
	if err != nil && err != sql.ErrNoRows {
		return domain.Dependents{}, fmt.Errorf("count dependents: %w", err)
	}
	return d, nil
}
