package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/attendance"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/domain/apperr"
	domainAttendance "gymdesk/internal/domain/attendance"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainSlot "gymdesk/internal/domain/slot"
	domainTrainer "gymdesk/internal/domain/trainer"
)

func fixedNow() time.Time { return time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC) }

type mockMemberStore struct {
	rows       []member.Row
	lastFilter member.ListFilter
	summary    member.Summary
	lastToday  string
}

// GetByID returns a seeded member by ID.
// PRE: id > 0
// POST: Returns the seeded member or ErrNotFound
func (m *mockMemberStore) GetByID(_ context.Context, id int64) (domainMember.Member, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r.Member, nil
		}
	}
	return domainMember.Member{}, apperr.NotFound("member %d", id)
}

// List returns all seeded rows and records the filter.
func (m *mockMemberStore) List(_ context.Context, filter member.ListFilter) ([]member.Row, error) {
	m.lastFilter = filter
	return m.rows, nil
}

// Summary returns the seeded summary.
func (m *mockMemberStore) Summary(_ context.Context, today string, _ int) (member.Summary, error) {
	m.lastToday = today
	return m.summary, nil
}

type mockPaymentStore struct {
	byMember   map[int64][]domainPayment.Payment
	rows       []payment.Row
	months     []payment.MonthTotal
	lastFilter payment.ListFilter
	lastToday  string
}

func (m *mockPaymentStore) ListByMember(_ context.Context, memberID int64) ([]domainPayment.Payment, error) {
	return m.byMember[memberID], nil
}

func (m *mockPaymentStore) List(_ context.Context, filter payment.ListFilter) ([]payment.Row, error) {
	m.lastFilter = filter
	return m.rows, nil
}

func (m *mockPaymentStore) RevenueByMonth(_ context.Context, filter payment.ListFilter) ([]payment.MonthTotal, error) {
	m.lastFilter = filter
	return m.months, nil
}

func (m *mockPaymentStore) ListOverdue(_ context.Context, today string) ([]payment.Row, error) {
	m.lastToday = today
	return m.rows, nil
}

type mockAttendanceStore struct {
	rows     []domainAttendance.Row
	report   []attendance.ReportRow
	lastDate string
}

func (m *mockAttendanceStore) LoadForDate(_ context.Context, date string) ([]domainAttendance.Row, error) {
	m.lastDate = date
	return m.rows, nil
}

func (m *mockAttendanceStore) List(_ context.Context, _ attendance.ListFilter) ([]attendance.ReportRow, error) {
	return m.report, nil
}

type mockSlotStore struct {
	slots    []domainSlot.Slot
	byMember map[int64][]domainSlot.Slot
}

func (m *mockSlotStore) List(_ context.Context) ([]domainSlot.Slot, error) { return m.slots, nil }

func (m *mockSlotStore) ListByMember(_ context.Context, memberID int64) ([]domainSlot.Slot, error) {
	return m.byMember[memberID], nil
}

type mockTrainerStore struct {
	trainers []domainTrainer.Trainer
	history  map[int64][]domainTrainer.HistoryEntry
}

func (m *mockTrainerStore) GetByID(_ context.Context, id int64) (domainTrainer.Trainer, error) {
	for _, t := range m.trainers {
		if t.ID == id {
			return t, nil
		}
	}
	return domainTrainer.Trainer{}, apperr.NotFound("trainer %d", id)
}

func (m *mockTrainerStore) List(_ context.Context) ([]domainTrainer.Trainer, error) {
	return m.trainers, nil
}

func (m *mockTrainerStore) History(_ context.Context, trainerID int64) ([]domainTrainer.HistoryEntry, error) {
	return m.history[trainerID], nil
}
