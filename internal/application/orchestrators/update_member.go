package orchestrators

import (
	"context"
	"log/slog"
	"strings"
)

// UpdateMemberInput carries the editable profile fields. Dates are not
// editable here; only a payment moves the end date.
type UpdateMemberInput struct {
	ID      int64
	Name    string
	Phone   string
	Email   string
	Address string
	Gender  string
	Plan    string
	Photo   string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	Tx      Transactor
	Refresh RefreshFunc
}

// ExecuteUpdateMember overwrites a member's profile fields.
// PRE: Member exists
// POST: Profile persisted; start and end dates unchanged
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) error {
	err := deps.Tx.InTx(ctx, "update_member", func(s Stores) error {
		m, err := s.Members.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		m.Name = input.Name
		m.Phone = strings.TrimSpace(input.Phone)
		m.Email = strings.TrimSpace(input.Email)
		m.Address = strings.TrimSpace(input.Address)
		m.Gender = input.Gender
		m.Plan = strings.TrimSpace(input.Plan)
		m.Photo = input.Photo
		if err := m.Validate(); err != nil {
			return err
		}
		return s.Members.Update(ctx, m)
	})
	if err != nil {
		return err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", input.ID)
	notify(ctx, "update_member", deps.Refresh)
	return nil
}
