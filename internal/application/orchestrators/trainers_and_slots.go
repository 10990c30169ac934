package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/slot"
	"gymdesk/internal/domain/trainer"
)

// RosterDeps holds dependencies for trainer and slot maintenance.
type RosterDeps struct {
	Tx      Transactor
	Refresh RefreshFunc
}

// AddTrainerInput carries input for AddTrainer.
type AddTrainerInput struct {
	Name           string
	Phone          string
	Specialization string
}

// ExecuteAddTrainer adds a trainer, Available until booked for today.
// PRE: Name is non-empty
// POST: Trainer stored with status Available
func ExecuteAddTrainer(ctx context.Context, input AddTrainerInput, deps RosterDeps) (int64, error) {
	t := trainer.Trainer{
		Name:           input.Name,
		Phone:          input.Phone,
		Specialization: input.Specialization,
		Status:         trainer.StatusAvailable,
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := deps.Tx.InTx(ctx, "add_trainer", func(s Stores) error {
		var err error
		id, err = s.Trainers.Create(ctx, t)
		return err
	})
	if err != nil {
		return 0, err
	}
	slog.Info("trainer_event", "event", "trainer_added", "trainer_id", id)
	notify(ctx, "add_trainer", deps.Refresh)
	return id, nil
}

// AddSlotInput carries input for AddSlot.
type AddSlotInput struct {
	StartTime string
	EndTime   string
	Gender    string
}

// ExecuteAddSlot adds a bookable time window.
// PRE: Start and end are non-empty, gender is Male, Female or Mixed
// POST: Slot stored
func ExecuteAddSlot(ctx context.Context, input AddSlotInput, deps RosterDeps) (int64, error) {
	sl := slot.Slot{StartTime: input.StartTime, EndTime: input.EndTime, Gender: input.Gender}
	if err := sl.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := deps.Tx.InTx(ctx, "add_slot", func(s Stores) error {
		var err error
		id, err = s.Slots.Create(ctx, sl)
		return err
	})
	if err != nil {
		return 0, err
	}
	slog.Info("slot_event", "event", "slot_added", "slot_id", id, "label", sl.Label())
	notify(ctx, "add_slot", deps.Refresh)
	return id, nil
}

// ExecuteAssignSlot gives a member a recurring slot.
// PRE: Member and slot exist
// POST: Assignment stored; ErrGenderMismatch or ErrConflict leave nothing behind
func ExecuteAssignSlot(ctx context.Context, memberID, slotID int64, deps RosterDeps) error {
	err := deps.Tx.InTx(ctx, "assign_slot", func(s Stores) error {
		m, err := s.Members.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		sl, err := s.Slots.GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		if !sl.Admits(m.Gender) {
			return apperr.GenderMismatch("member %d is %s but slot %s is for %s", m.ID, m.Gender, sl.Label(), sl.Gender)
		}
		return s.Slots.Assign(ctx, memberID, slotID)
	})
	if err != nil {
		return err
	}
	slog.Info("slot_event", "event", "slot_assigned", "member_id", memberID, "slot_id", slotID)
	notify(ctx, "assign_slot", deps.Refresh)
	return nil
}

// ExecuteUnassignSlot removes a member's recurring slot.
// POST: Assignment removed or ErrNotFound
func ExecuteUnassignSlot(ctx context.Context, memberID, slotID int64, deps RosterDeps) error {
	err := deps.Tx.InTx(ctx, "unassign_slot", func(s Stores) error {
		return s.Slots.Unassign(ctx, memberID, slotID)
	})
	if err != nil {
		return err
	}
	slog.Info("slot_event", "event", "slot_unassigned", "member_id", memberID, "slot_id", slotID)
	notify(ctx, "unassign_slot", deps.Refresh)
	return nil
}
