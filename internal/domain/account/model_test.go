package account_test

import (
	"strings"
	"testing"

	"gymdesk/internal/domain/account"
)

// TestUser_Validate tests validation of User.
func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    account.User
		wantErr error
	}{
		{"valid", account.User{Username: "admin", PasswordHash: "x"}, nil},
		{"blank username", account.User{Username: "  ", PasswordHash: "x"}, account.ErrEmptyUsername},
		{"no hash", account.User{Username: "admin"}, account.ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.user.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	long := account.User{Username: strings.Repeat("a", 65), PasswordHash: "x"}
	if err := long.Validate(); err == nil {
		t.Error("expected error for long username")
	}
}

// TestUser_SetPassword tests hashing rules.
func TestUser_SetPassword(t *testing.T) {
	var u account.User
	if err := u.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("empty: error = %v", err)
	}
	if err := u.SetPassword("abc"); err != account.ErrPasswordTooShort {
		t.Errorf("short: error = %v", err)
	}
	if err := u.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "admin123" {
		t.Errorf("PasswordHash = %q, want a bcrypt hash", u.PasswordHash)
	}
}

// TestUser_CheckPassword tests verifying a password against the stored hash.
func TestUser_CheckPassword(t *testing.T) {
	var u account.User
	if err := u.CheckPassword("anything"); err != account.ErrWrongPassword {
		t.Errorf("no hash: error = %v, want ErrWrongPassword", err)
	}
	if err := u.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := u.CheckPassword("admin123"); err != nil {
		t.Errorf("correct password: %v", err)
	}
	if err := u.CheckPassword("admin124"); err != account.ErrWrongPassword {
		t.Errorf("wrong password: error = %v, want ErrWrongPassword", err)
	}
}
