package member_test

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/member"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		member  member.Member
		wantErr bool
	}{
		{
			name: "valid member",
			member: member.Member{
				Name: "John Doe", Email: "john@example.com", Gender: member.GenderMale,
				StartDate: "2024-01-01", EndDate: "2024-02-01", Plan: member.PlanMonthly,
			},
		},
		{
			name:   "valid without email or end date",
			member: member.Member{Name: "Jane", Gender: member.GenderFemale, StartDate: "2024-01-01"},
		},
		{
			name:    "empty name",
			member:  member.Member{Name: "   ", Gender: member.GenderMale, StartDate: "2024-01-01"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			member:  member.Member{Name: "John", Email: "invalid-email", Gender: member.GenderMale, StartDate: "2024-01-01"},
			wantErr: true,
		},
		{
			name:    "invalid gender",
			member:  member.Member{Name: "John", Gender: "Mixed", StartDate: "2024-01-01"},
			wantErr: true,
		},
		{
			name:    "invalid end date",
			member:  member.Member{Name: "John", Gender: member.GenderOther, StartDate: "2024-01-01", EndDate: "2024-02-30"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Member.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("error kind = %v, want ErrValidation", err)
			}
		})
	}
}

// TestMemberValidateNew tests the creation-time date ordering rule.
func TestMemberValidateNew(t *testing.T) {
	m := member.Member{Name: "A", Gender: member.GenderMale, StartDate: "2024-03-01", EndDate: "2024-02-01"}
	if err := m.ValidateNew(); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("end before start: error = %v, want ErrValidation", err)
	}

	m.EndDate = "2024-03-01"
	if err := m.ValidateNew(); err != nil {
		t.Errorf("end == start: unexpected error %v", err)
	}

	m.StartDate = ""
	if err := m.ValidateNew(); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing start: error = %v, want ErrValidation", err)
	}
}

// TestClassify covers the boundaries of the warning window.
func TestClassify(t *testing.T) {
	today := day("2024-06-10")
	tests := []struct {
		end  string
		want member.Expiry
	}{
		{"2024-06-09", member.ExpiryExpired},
		{"2023-01-01", member.ExpiryExpired},
		{"2024-06-10", member.ExpiryExpiringSoon},
		{"2024-06-17", member.ExpiryExpiringSoon},
		{"2024-06-18", member.ExpiryActive},
		{"2025-06-10", member.ExpiryActive},
	}
	for _, tt := range tests {
		t.Run(tt.end, func(t *testing.T) {
			if got := member.Classify(day(tt.end), today); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.end, got, tt.want)
			}
		})
	}
}

// TestClassifyPartition checks every end date lands in exactly one class and
// ExpiringSoon dates are never before today.
func TestClassifyPartition(t *testing.T) {
	today := day("2024-02-27")
	for offset := -40; offset <= 40; offset++ {
		end := today.AddDate(0, 0, offset)
		got := member.Classify(end, today)
		switch got {
		case member.ExpiryExpired:
			if offset >= 0 {
				t.Errorf("offset %d classified Expired", offset)
			}
		case member.ExpiryExpiringSoon:
			if offset < 0 || offset > 7 {
				t.Errorf("offset %d classified ExpiringSoon", offset)
			}
		case member.ExpiryActive:
			if offset <= 7 {
				t.Errorf("offset %d classified Active", offset)
			}
		default:
			t.Errorf("offset %d: unexpected class %q", offset, got)
		}
	}
}

// TestMemberClassifyWithoutEndDate tests members that were never given an end date.
func TestMemberClassifyWithoutEndDate(t *testing.T) {
	m := member.Member{}
	if got := m.Classify(day("2024-01-01"), 7); got != member.ExpiryNone {
		t.Errorf("Classify() = %s, want %s", got, member.ExpiryNone)
	}
}

// TestRenewedEndDate tests the renewal extension rule.
func TestRenewedEndDate(t *testing.T) {
	tests := []struct {
		name       string
		currentEnd string
		paid       string
		want       string
	}{
		{"late payment extends from paid date", "2024-01-01", "2024-01-15", "2024-02-14"},
		{"early payment extends from current end", "2024-03-01", "2024-01-15", "2024-03-31"},
		{"same day", "2024-01-15", "2024-01-15", "2024-02-14"},
		{"no end date", "", "2024-01-15", "2024-02-14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := member.RenewedEndDate(tt.currentEnd, tt.paid, member.DefaultRenewalDays)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RenewedEndDate(%q, %q) = %q, want %q", tt.currentEnd, tt.paid, got, tt.want)
			}
		})
	}
}

// TestRenewedEndDateBadInput rejects unparseable dates.
func TestRenewedEndDateBadInput(t *testing.T) {
	if _, err := member.RenewedEndDate("", "15/01/2024", 30); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
