package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"gymdesk/internal/adapters/perf"
	"gymdesk/internal/domain/apperr"
)

// WithTx runs fn as one unit of work: everything fn writes through q commits
// together, or nothing does. The transaction is always released, including
// when fn fails or panics.
// PRE: op names the logical operation for logs and timings
// POST: Committed if fn returned nil, rolled back otherwise
func WithTx(ctx context.Context, db SQLDB, op string, fn func(q Querier) error) (err error) {
	id := uuid.NewString()
	start := time.Now()

	defer func() {
		recordOperation(db, op, start, err)
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	slog.Debug("uow", "event", "begin", "op", op, "uow_id", id)

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Error("uow", "event", "rollback_failed", "op", op, "uow_id", id, "error", rbErr)
			return
		}
		slog.Debug("uow", "event", "rollback", "op", op, "uow_id", id)
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	committed = true
	slog.Debug("uow", "event", "commit", "op", op, "uow_id", id,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0)
	return nil
}

func recordOperation(db SQLDB, op string, start time.Time, err error) {
	timed, ok := db.(*TimedDB)
	if !ok || timed.collector == nil {
		return
	}
	timed.collector.Record(perf.Entry{
		Kind:       perf.KindOperation,
		Name:       op,
		Failed:     err != nil,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	return constraintCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	return constraintCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

func constraintCode(err error, codes ...int) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.Code() == c {
			return true
		}
	}
	return false
}

// NotFoundOr maps sql.ErrNoRows to an ErrNotFound for what, and wraps any
// other error with the op name.
func NotFoundOr(err error, op, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s %d", what, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// RequireAffected returns ErrNotFound when a write touched no rows.
func RequireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("%s %d", what, id)
	}
	return nil
}
