package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/domain/dates"
	domainPayment "gymdesk/internal/domain/payment"
)

// GetPaymentsReportQuery bounds the report by paid date. Empty bounds are open.
type GetPaymentsReportQuery struct {
	From string
	To   string
}

// PaymentView is one report row with its due status.
type PaymentView struct {
	payment.Row
	Status domainPayment.Status
}

// GetPaymentsReportResult carries rows and totals.
type GetPaymentsReportResult struct {
	Rows    []PaymentView
	Count   int
	Total   float64
	Overdue int
	DueSoon int
}

// GetPaymentsReportDeps holds dependencies for the payment reports.
type GetPaymentsReportDeps struct {
	PaymentStore PaymentStore
	Now          func() time.Time
	DueSoonDays  int
}

// QueryGetPaymentsReport lists payments in a range with Overdue / DueSoon / OK status.
// PRE: From and To are empty or yyyy-MM-dd
// POST: Total is the sum of every listed amount
func QueryGetPaymentsReport(ctx context.Context, query GetPaymentsReportQuery, deps GetPaymentsReportDeps) (GetPaymentsReportResult, error) {
	if err := checkRange(query.From, query.To); err != nil {
		return GetPaymentsReportResult{}, err
	}
	soon := deps.DueSoonDays
	if soon <= 0 {
		soon = domainPayment.DefaultDueSoonDays
	}
	today, _ := clock(deps.Now)

	rows, err := deps.PaymentStore.List(ctx, payment.ListFilter{From: query.From, To: query.To})
	if err != nil {
		return GetPaymentsReportResult{}, err
	}
	result := GetPaymentsReportResult{Rows: make([]PaymentView, 0, len(rows))}
	for _, r := range rows {
		v := PaymentView{Row: r, Status: r.DueStatus(today, soon)}
		switch v.Status {
		case domainPayment.StatusOverdue:
			result.Overdue++
		case domainPayment.StatusDueSoon:
			result.DueSoon++
		}
		result.Total += r.Amount
		result.Rows = append(result.Rows, v)
	}
	result.Count = len(result.Rows)
	return result, nil
}

// QueryGetRevenueByMonth sums payments per yyyy-MM within a range.
// POST: Months ascending
func QueryGetRevenueByMonth(ctx context.Context, query GetPaymentsReportQuery, deps GetPaymentsReportDeps) ([]payment.MonthTotal, error) {
	if err := checkRange(query.From, query.To); err != nil {
		return nil, err
	}
	return deps.PaymentStore.RevenueByMonth(ctx, payment.ListFilter{From: query.From, To: query.To})
}

// OverdueView is an overdue payment with how long it has been due.
type OverdueView struct {
	payment.Row
	DaysOverdue int
}

// QueryGetOverduePayments lists payments whose due date has passed, oldest first.
func QueryGetOverduePayments(ctx context.Context, deps GetPaymentsReportDeps) ([]OverdueView, error) {
	today, todayStr := clock(deps.Now)
	rows, err := deps.PaymentStore.ListOverdue(ctx, todayStr)
	if err != nil {
		return nil, err
	}
	list := make([]OverdueView, 0, len(rows))
	for _, r := range rows {
		v := OverdueView{Row: r}
		if due, err := dates.Parse(r.DueDate); err == nil {
			v.DaysOverdue = dates.DaysBetween(due, today)
		}
		list = append(list, v)
	}
	return list, nil
}
