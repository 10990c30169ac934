package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/trainer"
)

// Delete policies for members that still have payments, attendance,
// bookings or slot assignments.
const (
	DeletePolicyCascade = "cascade"
	DeletePolicyReject  = "reject"
)

// ValidDeletePolicy reports whether p names a known policy.
func ValidDeletePolicy(p string) bool {
	return p == DeletePolicyCascade || p == DeletePolicyReject
}

// DeleteMemberInput carries input for the orchestrator.
type DeleteMemberInput struct {
	MemberID int64
}

// DeleteMemberResult reports what went with the member.
type DeleteMemberResult struct {
	Payments        int64
	Attendance      int64
	Bookings        int64
	SlotAssignments int64
	// ReleasedTrainers lists trainers set back to Available because the
	// member's booking for today was removed.
	ReleasedTrainers []int64
}

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	Tx Transactor
	// Policy is DeletePolicyCascade (default) or DeletePolicyReject.
	Policy  string
	Now     func() time.Time
	Refresh RefreshFunc
}

// ExecuteDeleteMember removes a member under the configured policy.
// PRE: Member exists
// POST cascade: member and every dependent row removed in one transaction
// POST reject: ErrConflict and nothing removed when dependents exist
// INVARIANT: No row references a deleted member
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps DeleteMemberDeps) (DeleteMemberResult, error) {
	policy := deps.Policy
	if policy == "" {
		policy = DeletePolicyCascade
	}
	if !ValidDeletePolicy(policy) {
		return DeleteMemberResult{}, apperr.Validation("unknown delete policy %q", policy)
	}
	today := todayString(deps.Now)

	var result DeleteMemberResult
	err := deps.Tx.InTx(ctx, "delete_member", func(s Stores) error {
		if _, err := s.Members.GetByID(ctx, input.MemberID); err != nil {
			return err
		}
		dependents, err := s.Members.CountDependents(ctx, input.MemberID)
		if err != nil {
			return err
		}
		if dependents.Any() && policy == DeletePolicyReject {
			return apperr.Conflict("member %d still has %d payments, %d attendance marks, %d bookings and %d slot assignments",
				input.MemberID, dependents.Payments, dependents.Attendance, dependents.Bookings, dependents.SlotAssignments)
		}

		todays, err := s.Trainers.BookingsByMemberOn(ctx, input.MemberID, today)
		if err != nil {
			return err
		}
		if result.Payments, err = s.Payments.DeleteByMember(ctx, input.MemberID); err != nil {
			return err
		}
		if result.Attendance, err = s.Attendance.DeleteByMember(ctx, input.MemberID); err != nil {
			return err
		}
		if result.Bookings, err = s.Trainers.DeleteBookingsByMember(ctx, input.MemberID); err != nil {
			return err
		}
		if result.SlotAssignments, err = s.Slots.DeleteAssignmentsByMember(ctx, input.MemberID); err != nil {
			return err
		}
		seen := make(map[int64]bool)
		for _, b := range todays {
			if seen[b.TrainerID] {
				continue
			}
			seen[b.TrainerID] = true
			if err := s.Trainers.SetStatus(ctx, b.TrainerID, trainer.StatusAvailable); err != nil {
				return err
			}
			result.ReleasedTrainers = append(result.ReleasedTrainers, b.TrainerID)
		}
		return s.Members.Delete(ctx, input.MemberID)
	})
	if err != nil {
		return DeleteMemberResult{}, err
	}

	slog.Info("member_event", "event", "member_deleted", "member_id", input.MemberID, "policy", policy,
		"payments", result.Payments, "attendance", result.Attendance, "bookings", result.Bookings)
	notify(ctx, "delete_member", deps.Refresh)
	return result, nil
}
