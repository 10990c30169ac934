package payment_test

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/apperr"
	"gymdesk/internal/domain/payment"
)

// TestParseAmount tests parsing of form-entered amounts.
func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"50", 50, false},
		{" 49.99 ", 49.99, false},
		{"0", 0, true},
		{"-10", 0, true},
		{"ten", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := payment.ParseAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Errorf("error kind = %v, want ErrValidation", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestPaymentValidation tests validation of Payment.
func TestPaymentValidation(t *testing.T) {
	tests := []struct {
		name    string
		p       payment.Payment
		wantErr bool
	}{
		{"valid", payment.Payment{MemberID: 1, Amount: 30, PaidDate: "2024-01-15", DueDate: "2024-02-15"}, false},
		{"no due date", payment.Payment{MemberID: 1, Amount: 30, PaidDate: "2024-01-15"}, false},
		{"zero amount", payment.Payment{MemberID: 1, Amount: 0, PaidDate: "2024-01-15"}, true},
		{"negative amount", payment.Payment{MemberID: 1, Amount: -1, PaidDate: "2024-01-15"}, true},
		{"no member", payment.Payment{Amount: 10, PaidDate: "2024-01-15"}, true},
		{"bad paid date", payment.Payment{MemberID: 1, Amount: 10, PaidDate: "yesterday"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Payment.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestDueStatus tests the due-date classification used by reports.
func TestDueStatus(t *testing.T) {
	today := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		due  string
		want payment.Status
	}{
		{"2024-05-09", payment.StatusOverdue},
		{"2024-05-10", payment.StatusDueSoon},
		{"2024-05-13", payment.StatusDueSoon},
		{"2024-05-14", payment.StatusOK},
		{"", payment.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			p := payment.Payment{DueDate: tt.due}
			if got := p.DueStatus(today, payment.DefaultDueSoonDays); got != tt.want {
				t.Errorf("DueStatus(%q) = %s, want %s", tt.due, got, tt.want)
			}
		})
	}
}
