package payment

import (
	"context"
	"fmt"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/apperr"
	domain "gymdesk/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new payment store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a Payment.
// PRE: value has been validated
// POST: Row inserted, or ErrNotFound when the member does not exist
func (s *SQLiteStore) Create(ctx context.Context, value domain.Payment) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (member_id, amount, paid_date, due_date) VALUES (?, ?, ?, ?)",
		value.MemberID, value.Amount, value.PaidDate, nullable(value.DueDate),
	)
	if storage.IsForeignKeyViolation(err) {
		return 0, apperr.NotFound("member %d", value.MemberID)
	}
	if err != nil {
		return 0, fmt.Errorf("create payment: %w", err)
	}
	return res.LastInsertId()
}

// ListByMember returns a member's payments, newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID int64) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, amount, paid_date, COALESCE(due_date, '')
		FROM payments WHERE member_id = ?
		ORDER BY paid_date DESC, id DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member payments: %w", err)
	}
	defer rows.Close()

	var list []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.PaidDate, &p.DueDate); err != nil {
			return nil, fmt.Errorf("list member payments: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// DeleteByMember removes every payment of a member and returns how many went.
func (s *SQLiteStore) DeleteByMember(ctx context.Context, memberID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE member_id = ?", memberID)
	if err != nil {
		return 0, fmt.Errorf("delete member payments: %w", err)
	}
	return res.RowsAffected()
}

// rangeClause appends the paid_date bounds of filter.
func rangeClause(filter ListFilter, query string, args []any) (string, []any) {
	if filter.From != "" {
		query += " AND p.paid_date >= ?"
		args = append(args, filter.From)
	}
	if filter.To != "" {
		query += " AND p.paid_date <= ?"
		args = append(args, filter.To)
	}
	return query, args
}

func (s *SQLiteStore) queryRows(ctx context.Context, op, query string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.MemberID, &r.MemberName, &r.Amount, &r.PaidDate, &r.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// List returns payments paid within the filter range with member names,
// newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Row, error) {
	query, args := rangeClause(filter, `
		SELECT p.id, p.member_id, m.name, p.amount, p.paid_date, COALESCE(p.due_date, '')
		FROM payments p JOIN members m ON m.id = p.member_id
		WHERE 1=1`, nil)
	query += " ORDER BY p.paid_date DESC, p.id DESC"
	return s.queryRows(ctx, "list payments", query, args...)
}

// RevenueByMonth sums payments per paid month within the filter range.
// POST: Months ascending; months without payments are absent
func (s *SQLiteStore) RevenueByMonth(ctx context.Context, filter ListFilter) ([]MonthTotal, error) {
	query, args := rangeClause(filter, `
		SELECT substr(p.paid_date, 1, 7) AS month, SUM(p.amount), COUNT(*)
		FROM payments p
		WHERE 1=1`, nil)
	query += " GROUP BY month ORDER BY month"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	defer rows.Close()

	var list []MonthTotal
	for rows.Next() {
		var mt MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Total, &mt.Count); err != nil {
			return nil, fmt.Errorf("revenue by month: %w", err)
		}
		list = append(list, mt)
	}
	return list, rows.Err()
}

// ListOverdue returns payments whose due date is before today, oldest due first.
// Payments without a due date are never overdue.
func (s *SQLiteStore) ListOverdue(ctx context.Context, today string) ([]Row, error) {
	return s.queryRows(ctx, "list overdue", `
		SELECT p.id, p.member_id, m.name, p.amount, p.paid_date, p.due_date
		FROM payments p JOIN members m ON m.id = p.member_id
		WHERE p.due_date IS NOT NULL AND p.due_date < ?
		ORDER BY p.due_date, p.id`, today)
}
