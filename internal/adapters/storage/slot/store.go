package slot

import (
	"context"

	domain "gymdesk/internal/domain/slot"
)

// Store persists Slot state and the recurring slot assignments of members.
type Store interface {
	Create(ctx context.Context, value domain.Slot) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Slot, error)
	List(ctx context.Context) ([]domain.Slot, error)
	Assign(ctx context.Context, memberID, slotID int64) error
	Unassign(ctx context.Context, memberID, slotID int64) error
	ListByMember(ctx context.Context, memberID int64) ([]domain.Slot, error)
	DeleteAssignmentsByMember(ctx context.Context, memberID int64) (int64, error)
}
