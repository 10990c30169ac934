// Package storagetest opens throwaway databases for store and workflow tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"gymdesk/internal/adapters/storage"
)

// Open creates a fresh file-backed database with the full schema under
// t.TempDir. The pool is closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "gym.db"), storage.Options{MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.EnsureSchema(ctx, db, storage.Options{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

// Exec runs a statement and fails the test on error.
func Exec(t testing.TB, db storage.Querier, query string, args ...any) sql.Result {
	t.Helper()
	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
	return res
}

// InsertMember adds a member row directly and returns its id.
func InsertMember(t testing.TB, db storage.Querier, name, gender, endDate string) int64 {
	t.Helper()
	var end any
	if endDate != "" {
		end = endDate
	}
	res := Exec(t, db,
		"INSERT INTO members (name, gender, start_date, end_date, membership_plan) VALUES (?, ?, ?, ?, ?)",
		name, gender, "2024-01-01", end, "Monthly")
	id, _ := res.LastInsertId()
	return id
}

// InsertTrainer adds a trainer row directly and returns its id.
func InsertTrainer(t testing.TB, db storage.Querier, name string) int64 {
	t.Helper()
	res := Exec(t, db, "INSERT INTO trainers (name) VALUES (?)", name)
	id, _ := res.LastInsertId()
	return id
}

// InsertSlot adds a slot row directly and returns its id.
func InsertSlot(t testing.TB, db storage.Querier, start, end, gender string) int64 {
	t.Helper()
	res := Exec(t, db, "INSERT INTO slots (start_time, end_time, gender) VALUES (?, ?, ?)", start, end, gender)
	id, _ := res.LastInsertId()
	return id
}

// Count returns SELECT COUNT(*) for the given table and optional WHERE clause.
func Count(t testing.TB, db storage.Querier, table, where string, args ...any) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.QueryRowContext(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
