// Package uow binds the SQLite stores to one transaction per operation.
package uow

import (
	"context"

	"gymdesk/internal/adapters/storage"
	accountStore "gymdesk/internal/adapters/storage/account"
	attendanceStore "gymdesk/internal/adapters/storage/attendance"
	memberStore "gymdesk/internal/adapters/storage/member"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	slotStore "gymdesk/internal/adapters/storage/slot"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/orchestrators"
)

// Transactor implements orchestrators.Transactor over a SQL pool.
type Transactor struct {
	db storage.SQLDB
}

// Compile-time check.
var _ orchestrators.Transactor = (*Transactor)(nil)

// New creates a Transactor. db is usually a *storage.TimedDB.
func New(db storage.SQLDB) *Transactor {
	return &Transactor{db: db}
}

// InTx runs fn with every store bound to a single transaction.
// PRE: op names the operation for logs and timings
// POST: Committed if fn returned nil, rolled back otherwise
func (t *Transactor) InTx(ctx context.Context, op string, fn func(s orchestrators.Stores) error) error {
	return storage.WithTx(ctx, t.db, op, func(q storage.Querier) error {
		return fn(Bind(q))
	})
}

// Bind returns the stores over q, which may be a pool or a transaction.
func Bind(q storage.Querier) orchestrators.Stores {
	return orchestrators.Stores{
		Members:    memberStore.NewSQLiteStore(q),
		Payments:   paymentStore.NewSQLiteStore(q),
		Attendance: attendanceStore.NewSQLiteStore(q),
		Slots:      slotStore.NewSQLiteStore(q),
		Trainers:   trainerStore.NewSQLiteStore(q),
		Accounts:   accountStore.NewSQLiteStore(q),
	}
}
