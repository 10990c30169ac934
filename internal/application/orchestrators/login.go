package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/apperr"
)

// ErrInvalidCredentials is returned for any failed login, without saying
// which half was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStore
}

// ExecuteLogin checks a username and password against the stored hash.
// PRE: none
// POST: Returns the user on success, ErrInvalidCredentials for an unknown user
// or wrong password, and the wrapped store error otherwise
// INVARIANT: No state is written
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (account.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return account.User{}, ErrInvalidCredentials
	}

	u, err := deps.AccountStore.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.Error("auth_event", "event", "login_lookup_failed", "username", username, "error", err)
			return account.User{}, fmt.Errorf("login: %w", err)
		}
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "not_found")
		return account.User{}, ErrInvalidCredentials
	}
	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "wrong_password")
		return account.User{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "username", username)
	return u, nil
}

// SeedAdminInput carries the default administrative credential.
type SeedAdminInput struct {
	Username string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	Tx Transactor
}

// ExecuteSeedAdmin creates the first user when no user exists yet.
// PRE: Schema exists
// POST: Exactly one user exists after the first run; later runs change nothing
// INVARIANT: Only a one-way hash of the password is stored
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	u := account.User{Username: input.Username}
	created := false
	err := deps.Tx.InTx(ctx, "seed_admin", func(s Stores) error {
		n, err := s.Accounts.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		// Hash only when a seed is due; this runs on every open.
		if err := u.SetPassword(input.Password); err != nil {
			return err
		}
		if err := u.Validate(); err != nil {
			return err
		}
		if _, err := s.Accounts.Create(ctx, u); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		slog.Info("auth_event", "event", "admin_seeded", "username", u.Username)
	}
	return created, nil
}
