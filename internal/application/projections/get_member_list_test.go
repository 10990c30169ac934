package projections

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/domain/apperr"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainSlot "gymdesk/internal/domain/slot"
)

// TestQueryGetMemberList_ClassifiesAndJoins verifies classification and next-booking mapping.
func TestQueryGetMemberList_ClassifiesAndJoins(t *testing.T) {
	store := &mockMemberStore{rows: []member.Row{
		{Member: domainMember.Member{ID: 1, Name: "Ann", EndDate: "2024-06-09"}},
		{Member: domainMember.Member{ID: 2, Name: "Ben", EndDate: "2024-06-15"},
			NextBookingDate: "2024-06-11", NextTrainerName: "Tom", NextSlotStart: "07:00", NextSlotEnd: "08:00", NextSlotGender: "Mixed"},
		{Member: domainMember.Member{ID: 3, Name: "Cat", EndDate: "2024-08-01"}},
		{Member: domainMember.Member{ID: 4, Name: "Dan"}},
	}}

	res, err := QueryGetMemberList(context.Background(), GetMemberListQuery{Plan: "Monthly", Status: domainMember.FilterAll, Search: "a"},
		GetMemberListDeps{MemberStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter.Today != "2024-06-10" || store.lastFilter.Plan != "Monthly" || store.lastFilter.Search != "a" {
		t.Errorf("unexpected filter %+v", store.lastFilter)
	}

	want := []domainMember.Expiry{domainMember.ExpiryExpired, domainMember.ExpiryExpiringSoon, domainMember.ExpiryActive, domainMember.ExpiryNone}
	for i, w := range want {
		if res.Members[i].Expiry != w {
			t.Errorf("member %d expiry = %s, want %s", i, res.Members[i].Expiry, w)
		}
	}
	if res.Members[0].DaysLeft != -1 || res.Members[1].DaysLeft != 5 {
		t.Errorf("unexpected days left %d, %d", res.Members[0].DaysLeft, res.Members[1].DaysLeft)
	}
	nb := res.Members[1].NextBooking
	if nb == nil || nb.TrainerName != "Tom" || nb.SlotLabel != "07:00-08:00 (Mixed)" || nb.Date != "2024-06-11" {
		t.Errorf("unexpected next booking %+v", nb)
	}
	if res.Members[0].NextBooking != nil {
		t.Error("expected no next booking for Ann")
	}
}

// TestQueryGetMemberList_Paging verifies only the requested page is classified.
func TestQueryGetMemberList_Paging(t *testing.T) {
	store := &mockMemberStore{}
	for i := int64(1); i <= 5; i++ {
		store.rows = append(store.rows, member.Row{Member: domainMember.Member{ID: i, Name: "M", EndDate: "2024-08-01"}})
	}
	res, err := QueryGetMemberList(context.Background(), GetMemberListQuery{Page: 2, PerPage: 2},
		GetMemberListDeps{MemberStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Members) != 2 || res.Members[0].ID != 3 || res.Members[1].ID != 4 {
		t.Errorf("unexpected page %+v", res.Members)
	}
	if res.Page.Total != 5 || res.Page.TotalPages != 3 || res.Page.StartRow() != 3 {
		t.Errorf("unexpected page info %+v", res.Page)
	}
}

// TestQueryGetMemberList_BadStatus verifies unknown filters are rejected.
func TestQueryGetMemberList_BadStatus(t *testing.T) {
	_, err := QueryGetMemberList(context.Background(), GetMemberListQuery{Status: "Frozen"},
		GetMemberListDeps{MemberStore: &mockMemberStore{}, Now: fixedNow})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// TestQueryGetMemberProfile verifies payments and slots are attached.
func TestQueryGetMemberProfile(t *testing.T) {
	members := &mockMemberStore{rows: []member.Row{{Member: domainMember.Member{ID: 7, Name: "Ann", EndDate: "2024-07-10"}}}}
	payments := &mockPaymentStore{byMember: map[int64][]domainPayment.Payment{
		7: {{ID: 2, MemberID: 7, Amount: 12.5}, {ID: 1, MemberID: 7, Amount: 20}},
	}}
	slots := &mockSlotStore{byMember: map[int64][]domainSlot.Slot{
		7: {{ID: 3, StartTime: "07:00", EndTime: "08:00", Gender: "Mixed"}},
	}}
	deps := GetMemberProfileDeps{MemberStore: members, PaymentStore: payments, SlotStore: slots, Now: fixedNow}

	res, err := QueryGetMemberProfile(context.Background(), GetMemberProfileQuery{MemberID: 7}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalPaid != 32.5 || len(res.Payments) != 2 {
		t.Errorf("unexpected payments %+v total %v", res.Payments, res.TotalPaid)
	}
	if len(res.Slots) != 1 || res.Slots[0].ID != 3 {
		t.Errorf("unexpected slots %+v", res.Slots)
	}
	if res.Expiry != domainMember.ExpiryActive || res.DaysLeft != 30 {
		t.Errorf("unexpected expiry %s / %d", res.Expiry, res.DaysLeft)
	}

	if _, err := QueryGetMemberProfile(context.Background(), GetMemberProfileQuery{MemberID: 8}, deps); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestQueryGetDashboard verifies counts are passed through with today's date.
func TestQueryGetDashboard(t *testing.T) {
	store := &mockMemberStore{summary: member.Summary{Total: 5, Active: 3, Expired: 1, ExpiringSoon: 2, NoEndDate: 1}}
	res, err := QueryGetDashboard(context.Background(), GetDashboardDeps{MemberStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastToday != "2024-06-10" || res.Total != 5 || res.ExpiringSoon != 2 || res.Today != "2024-06-10" {
		t.Errorf("unexpected result %+v", res)
	}
}
