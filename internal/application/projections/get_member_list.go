package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/domain/apperr"
	domainMember "gymdesk/internal/domain/member"
	domainSlot "gymdesk/internal/domain/slot"
)

// GetMemberListQuery carries query parameters. Empty Plan and Status mean All.
// PerPage of zero returns every match on one page.
type GetMemberListQuery struct {
	Plan    string
	Status  string
	Search  string
	Page    int
	PerPage int
}

// NextBooking is the member's earliest booking on or after today.
type NextBooking struct {
	Date        string
	TrainerName string
	SlotLabel   string
}

// MemberWithBookingView is one row of the member table.
type MemberWithBookingView struct {
	domainMember.Member
	Expiry      domainMember.Expiry
	DaysLeft    int // meaningless when Expiry is ExpiryNone
	NextBooking *NextBooking
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members []MemberWithBookingView
	Today   string
	Page    listutil.PageInfo
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore      MemberStore
	Now              func() time.Time
	// ExpiringSoonDays of zero means unset. Configured windows are always at
	// least one day.
	ExpiringSoonDays int
}

// QueryGetMemberList lists members with their classification and next booking.
// PRE: Status is empty, All, Active or Expired
// POST: Rows come from one joined store query, ordered by name
// INVARIANT: Expired lists only members whose end date is before today
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (GetMemberListResult, error) {
	if !domainMember.ValidStatusFilter(query.Status) {
		return GetMemberListResult{}, apperr.Validation("status filter must be All, Active or Expired, got %q", query.Status)
	}
	soon := deps.ExpiringSoonDays
	if soon <= 0 {
		soon = domainMember.DefaultExpiringSoonDays
	}
	today, todayStr := clock(deps.Now)

	rows, err := deps.MemberStore.List(ctx, member.ListFilter{
		Plan:   query.Plan,
		Status: query.Status,
		Search: query.Search,
		Today:  todayStr,
	})
	if err != nil {
		return GetMemberListResult{}, err
	}

	page := listutil.NewPageInfo(query.Page, query.PerPage, len(rows))
	rows = listutil.Window(rows, page)

	result := GetMemberListResult{Members: make([]MemberWithBookingView, 0, len(rows)), Today: todayStr, Page: page}
	for _, r := range rows {
		v := MemberWithBookingView{
			Member: r.Member,
			Expiry: r.Member.Classify(today, soon),
		}
		if v.Expiry != domainMember.ExpiryNone {
			v.DaysLeft, _ = r.Member.DaysLeft(today)
		}
		if r.HasNextBooking() {
			sl := domainSlot.Slot{StartTime: r.NextSlotStart, EndTime: r.NextSlotEnd, Gender: r.NextSlotGender}
			v.NextBooking = &NextBooking{Date: r.NextBookingDate, TrainerName: r.NextTrainerName, SlotLabel: sl.Label()}
		}
		result.Members = append(result.Members, v)
	}
	return result, nil
}
