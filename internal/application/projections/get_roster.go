package projections

import (
	"context"

	domainSlot "gymdesk/internal/domain/slot"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// GetRosterDeps holds dependencies for the trainer and slot listings.
type GetRosterDeps struct {
	TrainerStore TrainerStore
	SlotStore    SlotStore
}

// QueryListTrainers returns all trainers by name with their cached status.
func QueryListTrainers(ctx context.Context, deps GetRosterDeps) ([]domainTrainer.Trainer, error) {
	return deps.TrainerStore.List(ctx)
}

// QueryListSlots returns all slots ordered by start time.
func QueryListSlots(ctx context.Context, deps GetRosterDeps) ([]domainSlot.Slot, error) {
	return deps.SlotStore.List(ctx)
}

// GetTrainerHistoryResult carries a trainer and every booking they have had.
type GetTrainerHistoryResult struct {
	Trainer  domainTrainer.Trainer
	Bookings []domainTrainer.HistoryEntry
}

// QueryGetTrainerHistory returns a trainer's bookings, past and future.
// PRE: trainerID > 0
// POST: Bookings ordered by date ascending; ErrNotFound for an unknown trainer
func QueryGetTrainerHistory(ctx context.Context, trainerID int64, deps GetRosterDeps) (GetTrainerHistoryResult, error) {
	t, err := deps.TrainerStore.GetByID(ctx, trainerID)
	if err != nil {
		return GetTrainerHistoryResult{}, err
	}
	hist, err := deps.TrainerStore.History(ctx, trainerID)
	if err != nil {
		return GetTrainerHistoryResult{}, err
	}
	return GetTrainerHistoryResult{Trainer: t, Bookings: hist}, nil
}
