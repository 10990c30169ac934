package projections

import (
	"context"
	"time"

	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainSlot "gymdesk/internal/domain/slot"
)

// GetMemberProfileQuery carries query parameters.
type GetMemberProfileQuery struct {
	MemberID int64
}

// GetMemberProfileResult carries one member with payments and slots.
type GetMemberProfileResult struct {
	Member    domainMember.Member
	Expiry    domainMember.Expiry
	DaysLeft  int
	Payments  []domainPayment.Payment
	Slots     []domainSlot.Slot
	TotalPaid float64
}

// GetMemberProfileDeps holds dependencies for GetMemberProfile.
type GetMemberProfileDeps struct {
	MemberStore      MemberStore
	PaymentStore     PaymentStore
	SlotStore        SlotStore
	Now              func() time.Time
	ExpiringSoonDays int
}

// QueryGetMemberProfile loads a member with payment history and assigned slots.
// PRE: MemberID > 0
// POST: Returns ErrNotFound for an unknown member
func QueryGetMemberProfile(ctx context.Context, query GetMemberProfileQuery, deps GetMemberProfileDeps) (GetMemberProfileResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, query.MemberID)
	if err != nil {
		return GetMemberProfileResult{}, err
	}
	payments, err := deps.PaymentStore.ListByMember(ctx, m.ID)
	if err != nil {
		return GetMemberProfileResult{}, err
	}
	slots, err := deps.SlotStore.ListByMember(ctx, m.ID)
	if err != nil {
		return GetMemberProfileResult{}, err
	}

	soon := deps.ExpiringSoonDays
	if soon <= 0 {
		soon = domainMember.DefaultExpiringSoonDays
	}
	today, _ := clock(deps.Now)
	result := GetMemberProfileResult{
		Member:   m,
		Expiry:   m.Classify(today, soon),
		Payments: payments,
		Slots:    slots,
	}
	if result.Expiry != domainMember.ExpiryNone {
		result.DaysLeft, _ = m.DaysLeft(today)
	}
	for _, p := range payments {
		result.TotalPaid += p.Amount
	}
	return result, nil
}
