package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/dates"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
)

// CreateMemberInput carries input for the orchestrator.
type CreateMemberInput struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	Gender    string
	StartDate string
	EndDate   string
	Plan      string
	Photo     string
	// InitialAmount is the optional first payment as typed at the desk.
	// Empty means no payment is recorded.
	InitialAmount string
	DueDate       string
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	Tx      Transactor
	Refresh RefreshFunc
}

// ExecuteCreateMember registers a member and, when an amount is given, the
// first payment dated on the start date.
// PRE: Name, gender and start date are set
// POST: Member row created; payment created in the same transaction if requested
// INVARIANT: end_date >= start_date at creation
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, deps CreateMemberDeps) (int64, error) {
	m, first, err := buildNewMember(input)
	if err != nil {
		return 0, err
	}

	var id int64
	err = deps.Tx.InTx(ctx, "create_member", func(s Stores) error {
		var err error
		id, err = s.Members.Create(ctx, m)
		if err != nil {
			return err
		}
		if first == nil {
			return nil
		}
		first.MemberID = id
		if err := first.Validate(); err != nil {
			return err
		}
		_, err = s.Payments.Create(ctx, *first)
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("member_event", "event", "member_created", "member_id", id, "initial_payment", first != nil)
	notify(ctx, "create_member", deps.Refresh)
	return id, nil
}

// buildNewMember validates input and returns the member plus the optional
// first payment, without touching the store.
func buildNewMember(input CreateMemberInput) (member.Member, *payment.Payment, error) {
	m := member.Member{
		Name:      input.Name,
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		Address:   strings.TrimSpace(input.Address),
		Gender:    input.Gender,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Plan:      strings.TrimSpace(input.Plan),
		Photo:     input.Photo,
	}
	if err := m.ValidateNew(); err != nil {
		return member.Member{}, nil, err
	}
	if strings.TrimSpace(input.InitialAmount) == "" {
		return m, nil, nil
	}
	amount, err := payment.ParseAmount(input.InitialAmount)
	if err != nil {
		return member.Member{}, nil, err
	}
	first := &payment.Payment{Amount: amount, PaidDate: m.StartDate, DueDate: input.DueDate}
	if input.DueDate != "" {
		if _, err := dates.Parse(input.DueDate); err != nil {
			return member.Member{}, nil, err
		}
	}
	return m, first, nil
}

// validateCreateMember runs every check ExecuteCreateMember does before writing.
func validateCreateMember(input CreateMemberInput) error {
	_, _, err := buildNewMember(input)
	return err
}
