package account

import (
	"context"

	domain "gymdesk/internal/domain/account"
)

// Store persists desk users.
type Store interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, value domain.User) (int64, error)
	Count(ctx context.Context) (int, error)
}
