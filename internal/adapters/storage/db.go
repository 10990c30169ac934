package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "modernc.org/sqlite"
)

// latestSchemaVersion is bumped whenever the schema below changes.
const latestSchemaVersion = 1

// Options tune how the store is opened and initialised.
type Options struct {
	// MaxOpenConns caps the pool; SQLite serialises writers anyway.
	MaxOpenConns int
	// ResetAttendanceOnInit drops the attendance table on every init,
	// discarding all attendance history. Off unless explicitly requested.
	ResetAttendanceOnInit bool
}

// DSN builds the modernc sqlite connection string for a database file.
// Every connection gets foreign keys, a busy timeout, WAL and immediate
// write transactions so concurrent writers queue instead of failing.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Open connects to the database file and verifies the connection.
// PRE: path is a writable file path
// POST: Returns a live pool; the caller owns it and must Close it
func Open(ctx context.Context, path string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// EnsureSchema creates every table that does not exist yet.
// PRE: db is a valid database connection
// POST: All tables exist, existing member/payment/trainer rows untouched
// INVARIANT: Safe to call on every start
func EnsureSchema(ctx context.Context, db SQLDB, opts Options) error {
	if opts.ResetAttendanceOnInit {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS attendance"); err != nil {
			return fmt.Errorf("failed to reset attendance: %w", err)
		}
		slog.Warn("schema_event", "event", "attendance_reset")
	}

	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		end_date TEXT,
		membership_plan TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL CHECK(gender IN ('Male','Female','Other')),
		photo TEXT
	);

	CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		amount REAL NOT NULL CHECK(amount > 0),
		paid_date TEXT NOT NULL,
		due_date TEXT,
		FOREIGN KEY (member_id) REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS idx_payments_member ON payments(member_id);
	CREATE INDEX IF NOT EXISTS idx_payments_paid_date ON payments(paid_date);

	CREATE TABLE IF NOT EXISTS attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL CHECK(status IN ('Present','Absent')),
		UNIQUE(member_id, date),
		FOREIGN KEY (member_id) REFERENCES members(id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		gender TEXT NOT NULL CHECK(gender IN ('Male','Female','Mixed'))
	);

	CREATE TABLE IF NOT EXISTS member_slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		slot_id INTEGER NOT NULL,
		UNIQUE(member_id, slot_id),
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (slot_id) REFERENCES slots(id)
	);

	CREATE TABLE IF NOT EXISTS trainers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		specialization TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Available' CHECK(status IN ('Available','Training'))
	);

	CREATE TABLE IF NOT EXISTS trainer_bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trainer_id INTEGER NOT NULL,
		member_id INTEGER NOT NULL,
		slot_id INTEGER NOT NULL,
		booking_date TEXT NOT NULL,
		UNIQUE(trainer_id, slot_id, booking_date),
		FOREIGN KEY (trainer_id) REFERENCES trainers(id),
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (slot_id) REFERENCES slots(id)
	);
	CREATE INDEX IF NOT EXISTS idx_trainer_bookings_member ON trainer_bookings(member_id);
	CREATE INDEX IF NOT EXISTS idx_trainer_bookings_date ON trainer_bookings(booking_date);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", latestSchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != latestSchemaVersion:
		if _, err := db.ExecContext(ctx, "UPDATE schema_version SET version = ?", latestSchemaVersion); err != nil {
			return fmt.Errorf("failed to update schema version: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the version recorded by EnsureSchema.
// PRE: EnsureSchema has run
// POST: Returns the stored version
func SchemaVersion(ctx context.Context, db SQLDB) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}
