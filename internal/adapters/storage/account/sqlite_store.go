package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/account"
	"gymdesk/internal/domain/apperr"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.Querier
}

// NewSQLiteStore creates a new user store. db may be a pool or a transaction.
func NewSQLiteStore(db storage.Querier) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUsername retrieves a User by username.
// PRE: username is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperr.NotFound("user %q", username)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create inserts a User.
// PRE: value.PasswordHash is already a one-way hash
// POST: Row inserted or ErrConflict if the username is taken
func (s *SQLiteStore) Create(ctx context.Context, value domain.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", value.Username, value.PasswordHash)
	if storage.IsUniqueViolation(err) {
		return 0, apperr.Conflict("username %q is taken", value.Username)
	}
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return res.LastInsertId()
}

// Count returns the number of users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
