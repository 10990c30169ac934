package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
)

// RecordPaymentInput carries input for the orchestrator.
type RecordPaymentInput struct {
	MemberID int64
	Amount   float64
	PaidDate string // defaults to today when empty
	DueDate  string
}

// RecordPaymentResult reports what the payment changed.
type RecordPaymentResult struct {
	PaymentID   int64
	PreviousEnd string
	NewEndDate  string
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	Tx Transactor
	// RenewalDays is how far one payment extends the membership; 0 means the default.
	RenewalDays int
	Now         func() time.Time
	Refresh     RefreshFunc
}

// ExecuteRecordPayment stores a payment and renews the member from
// whichever is later, the current end date or the paid date.
// PRE: Amount > 0, member exists
// POST: Payment stored and end_date = max(end_date, paid_date) + RenewalDays, atomically
// INVARIANT: Renewal never shortens a membership
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (RecordPaymentResult, error) {
	days := deps.RenewalDays
	if days <= 0 {
		days = member.DefaultRenewalDays
	}
	p := payment.Payment{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		PaidDate: input.PaidDate,
		DueDate:  input.DueDate,
	}
	if p.PaidDate == "" {
		p.PaidDate = todayString(deps.Now)
	}
	if err := p.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	var result RecordPaymentResult
	err := deps.Tx.InTx(ctx, "record_payment", func(s Stores) error {
		m, err := s.Members.GetByID(ctx, p.MemberID)
		if err != nil {
			return err
		}
		newEnd, err := member.RenewedEndDate(m.EndDate, p.PaidDate, days)
		if err != nil {
			return err
		}
		id, err := s.Payments.Create(ctx, p)
		if err != nil {
			return err
		}
		if err := s.Members.SetEndDate(ctx, m.ID, newEnd); err != nil {
			return err
		}
		result = RecordPaymentResult{PaymentID: id, PreviousEnd: m.EndDate, NewEndDate: newEnd}
		return nil
	})
	if err != nil {
		return RecordPaymentResult{}, err
	}

	slog.Info("payment_event", "event", "payment_recorded",
		"member_id", p.MemberID, "amount", p.Amount, "paid_date", p.PaidDate, "new_end_date", result.NewEndDate)
	notify(ctx, "record_payment", deps.Refresh)
	return result, nil
}
