package payment

import (
	"context"

	domain "gymdesk/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	Create(ctx context.Context, value domain.Payment) (int64, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.Payment, error)
	DeleteByMember(ctx context.Context, memberID int64) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]Row, error)
	RevenueByMonth(ctx context.Context, filter ListFilter) ([]MonthTotal, error)
	ListOverdue(ctx context.Context, today string) ([]Row, error)
}

// ListFilter bounds reports by paid date. Empty bounds are open.
type ListFilter struct {
	From string
	To   string
}

// Row is a payment with the paying member's name.
type Row struct {
	domain.Payment
	MemberName string
}

// MonthTotal is the revenue for one calendar month (yyyy-MM).
type MonthTotal struct {
	Month string
	Total float64
	Count int
}
