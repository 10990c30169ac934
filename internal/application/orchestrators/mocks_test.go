package orchestrators

import (
	"context"
	"errors"
	"sort"
	"time"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/slot"
	"gymdesk/internal/domain/trainer"
)

var fixedTime = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

const today = "2024-06-10"

type attendanceKey struct {
	memberID int64
	date     string
}

// memDB is an in-memory stand-in for the store. mockTx snapshots it before
// each unit of work and restores the snapshot when the work fails.
type memDB struct {
	nextID      int64
	members     map[int64]member.Member
	payments    map[int64]payment.Payment
	attendance  map[attendanceKey]string
	slots       map[int64]slot.Slot
	assignments map[[2]int64]bool
	trainers    map[int64]trainer.Trainer
	bookings    map[int64]trainer.Booking
	users       map[string]account.User

	// failOn makes the named store call fail, e.g. "payments.create".
	failOn map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		members:     map[int64]member.Member{},
		payments:    map[int64]payment.Payment{},
		attendance:  map[attendanceKey]string{},
		slots:       map[int64]slot.Slot{},
		assignments: map[[2]int64]bool{},
		trainers:    map[int64]trainer.Trainer{},
		bookings:    map[int64]trainer.Booking{},
		users:       map[string]account.User{},
		failOn:      map[string]error{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) snapshot() memDB {
	return memDB{
		nextID:      db.nextID,
		members:     cloneMap(db.members),
		payments:    cloneMap(db.payments),
		attendance:  cloneMap(db.attendance),
		slots:       cloneMap(db.slots),
		assignments: cloneMap(db.assignments),
		trainers:    cloneMap(db.trainers),
		bookings:    cloneMap(db.bookings),
		users:       cloneMap(db.users),
		failOn:      db.failOn,
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) fail(op string) error {
	return db.failOn[op]
}

func (db *memDB) addMember(name, gender, end string) int64 {
	id := db.id()
	db.members[id] = member.Member{ID: id, Name: name, Gender: gender, StartDate: "2024-01-01", EndDate: end}
	return id
}

func (db *memDB) addTrainer(name, status string) int64 {
	id := db.id()
	db.trainers[id] = trainer.Trainer{ID: id, Name: name, Status: status}
	return id
}

func (db *memDB) addSlot(gender string) int64 {
	id := db.id()
	db.slots[id] = slot.Slot{ID: id, StartTime: "07:00", EndTime: "08:00", Gender: gender}
	return id
}

func (db *memDB) addBooking(trainerID, memberID, slotID int64, date string) int64 {
	id := db.id()
	db.bookings[id] = trainer.Booking{ID: id, TrainerID: trainerID, MemberID: memberID, SlotID: slotID, BookingDate: date}
	return id
}

// mockTx implements Transactor over a memDB.
type mockTx struct {
	db  *memDB
	ops []string
}

// InTx implements Transactor.
// PRE: fn is non-nil
// POST: memDB unchanged if fn failed
func (m *mockTx) InTx(_ context.Context, op string, fn func(s Stores) error) error {
	m.ops = append(m.ops, op)
	saved := m.db.snapshot()
	err := fn(Stores{
		Members:    memberMock{m.db},
		Payments:   paymentMock{m.db},
		Attendance: attendanceMock{m.db},
		Slots:      slotMock{m.db},
		Trainers:   trainerMock{m.db},
		Accounts:   accountMock{m.db},
	})
	if err != nil {
		*m.db = saved
	}
	return err
}

type memberMock struct{ db *memDB }

func (m memberMock) Create(_ context.Context, v member.Member) (int64, error) {
	if err := m.db.fail("members.create"); err != nil {
		return 0, err
	}
	v.ID = m.db.id()
	m.db.members[v.ID] = v
	return v.ID, nil
}

func (m memberMock) GetByID(_ context.Context, id int64) (member.Member, error) {
	v, ok := m.db.members[id]
	if !ok {
		return member.Member{}, apperr.NotFound("member %d", id)
	}
	return v, nil
}

func (m memberMock) Update(_ context.Context, v member.Member) error {
	cur, ok := m.db.members[v.ID]
	if !ok {
		return apperr.NotFound("member %d", v.ID)
	}
	v.StartDate, v.EndDate = cur.StartDate, cur.EndDate
	m.db.members[v.ID] = v
	return nil
}

func (m memberMock) SetEndDate(_ context.Context, id int64, end string) error {
	if err := m.db.fail("members.set_end_date"); err != nil {
		return err
	}
	v, ok := m.db.members[id]
	if !ok {
		return apperr.NotFound("member %d", id)
	}
	v.EndDate = end
	m.db.members[id] = v
	return nil
}

func (m memberMock) Delete(_ context.Context, id int64) error {
	if _, ok := m.db.members[id]; !ok {
		return apperr.NotFound("member %d", id)
	}
	delete(m.db.members, id)
	return nil
}

func (m memberMock) CountDependents(_ context.Context, id int64) (member.Dependents, error) {
	var d member.Dependents
	for _, p := range m.db.payments {
		if p.MemberID == id {
			d.Payments++
		}
	}
	for k := range m.db.attendance {
		if k.memberID == id {
			d.Attendance++
		}
	}
	for _, b := range m.db.bookings {
		if b.MemberID == id {
			d.Bookings++
		}
	}
	for k := range m.db.assignments {
		if k[0] == id {
			d.SlotAssignments++
		}
	}
	return d, nil
}

type paymentMock struct{ db *memDB }

func (m paymentMock) Create(_ context.Context, p payment.Payment) (int64, error) {
	if err := m.db.fail("payments.create"); err != nil {
		return 0, err
	}
	if _, ok := m.db.members[p.MemberID]; !ok {
		return 0, apperr.NotFound("member %d", p.MemberID)
	}
	p.ID = m.db.id()
	m.db.payments[p.ID] = p
	return p.ID, nil
}

func (m paymentMock) DeleteByMember(_ context.Context, memberID int64) (int64, error) {
	var n int64
	for id, p := range m.db.payments {
		if p.MemberID == memberID {
			delete(m.db.payments, id)
			n++
		}
	}
	return n, nil
}

type attendanceMock struct{ db *memDB }

func (m attendanceMock) Upsert(_ context.Context, a attendance.Attendance) error {
	if _, ok := m.db.members[a.MemberID]; !ok {
		return apperr.NotFound("member %d", a.MemberID)
	}
	m.db.attendance[attendanceKey{a.MemberID, a.Date}] = a.Status
	return nil
}

func (m attendanceMock) DeleteByMember(_ context.Context, memberID int64) (int64, error) {
	var n int64
	for k := range m.db.attendance {
		if k.memberID == memberID {
			delete(m.db.attendance, k)
			n++
		}
	}
	return n, nil
}

type slotMock struct{ db *memDB }

func (m slotMock) Create(_ context.Context, s slot.Slot) (int64, error) {
	s.ID = m.db.id()
	m.db.slots[s.ID] = s
	return s.ID, nil
}

func (m slotMock) GetByID(_ context.Context, id int64) (slot.Slot, error) {
	s, ok := m.db.slots[id]
	if !ok {
		return slot.Slot{}, apperr.NotFound("slot %d", id)
	}
	return s, nil
}

func (m slotMock) Assign(_ context.Context, memberID, slotID int64) error {
	k := [2]int64{memberID, slotID}
	if m.db.assignments[k] {
		return apperr.Conflict("already assigned")
	}
	m.db.assignments[k] = true
	return nil
}

func (m slotMock) Unassign(_ context.Context, memberID, slotID int64) error {
	k := [2]int64{memberID, slotID}
	if !m.db.assignments[k] {
		return apperr.NotFound("assignment")
	}
	delete(m.db.assignments, k)
	return nil
}

func (m slotMock) DeleteAssignmentsByMember(_ context.Context, memberID int64) (int64, error) {
	var n int64
	for k := range m.db.assignments {
		if k[0] == memberID {
			delete(m.db.assignments, k)
			n++
		}
	}
	return n, nil
}

type trainerMock struct{ db *memDB }

func (m trainerMock) Create(_ context.Context, t trainer.Trainer) (int64, error) {
	t.ID = m.db.id()
	m.db.trainers[t.ID] = t
	return t.ID, nil
}

func (m trainerMock) GetByID(_ context.Context, id int64) (trainer.Trainer, error) {
	t, ok := m.db.trainers[id]
	if !ok {
		return trainer.Trainer{}, apperr.NotFound("trainer %d", id)
	}
	return t, nil
}

func (m trainerMock) SetStatus(_ context.Context, id int64, status string) error {
	if err := m.db.fail("trainers.set_status"); err != nil {
		return err
	}
	t, ok := m.db.trainers[id]
	if !ok {
		return apperr.NotFound("trainer %d", id)
	}
	t.Status = status
	m.db.trainers[id] = t
	return nil
}

func (m trainerMock) CreateBooking(_ context.Context, b trainer.Booking) (int64, error) {
	for _, existing := range m.db.bookings {
		if existing.TrainerID == b.TrainerID && existing.SlotID == b.SlotID && existing.BookingDate == b.BookingDate {
			return 0, apperr.Conflict("double booking")
		}
	}
	b.ID = m.db.id()
	m.db.bookings[b.ID] = b
	return b.ID, nil
}

func (m trainerMock) GetBooking(_ context.Context, id int64) (trainer.Booking, error) {
	b, ok := m.db.bookings[id]
	if !ok {
		return trainer.Booking{}, apperr.NotFound("booking %d", id)
	}
	return b, nil
}

func (m trainerMock) DeleteBooking(_ context.Context, id int64) error {
	if _, ok := m.db.bookings[id]; !ok {
		return apperr.NotFound("booking %d", id)
	}
	delete(m.db.bookings, id)
	return nil
}

func (m trainerMock) DeleteBookingsOn(_ context.Context, trainerID int64, date string) (int64, error) {
	var n int64
	for id, b := range m.db.bookings {
		if b.TrainerID == trainerID && b.BookingDate == date {
			delete(m.db.bookings, id)
			n++
		}
	}
	return n, nil
}

func (m trainerMock) BookingsByMemberOn(_ context.Context, memberID int64, date string) ([]trainer.Booking, error) {
	var list []trainer.Booking
	for _, b := range m.db.bookings {
		if b.MemberID == memberID && b.BookingDate == date {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m trainerMock) DeleteBookingsByMember(_ context.Context, memberID int64) (int64, error) {
	var n int64
	for id, b := range m.db.bookings {
		if b.MemberID == memberID {
			delete(m.db.bookings, id)
			n++
		}
	}
	return n, nil
}

type accountMock struct{ db *memDB }

func (m accountMock) GetByUsername(_ context.Context, username string) (account.User, error) {
	if err := m.db.fail("accounts.get"); err != nil {
		return account.User{}, err
	}
	u, ok := m.db.users[username]
	if !ok {
		return account.User{}, apperr.NotFound("user %q", username)
	}
	return u, nil
}

func (m accountMock) Create(_ context.Context, u account.User) (int64, error) {
	if _, ok := m.db.users[u.Username]; ok {
		return 0, apperr.Conflict("username taken")
	}
	u.ID = m.db.id()
	m.db.users[u.Username] = u
	return u.ID, nil
}

func (m accountMock) Count(_ context.Context) (int, error) {
	return len(m.db.users), nil
}

var errDisk = errors.New("disk full")

func paymentFor(memberID int64) payment.Payment {
	return payment.Payment{MemberID: memberID, Amount: 10, PaidDate: "2024-06-01", DueDate: "2024-07-01"}
}
