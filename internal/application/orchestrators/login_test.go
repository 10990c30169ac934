package orchestrators

import (
	"context"
	"errors"
	"testing"
)

// TestExecuteSeedAdmin_Idempotent tests seeding only happens on an empty user table.
func TestExecuteSeedAdmin_Idempotent(t *testing.T) {
	db := newMemDB()
	deps := SeedAdminDeps{Tx: &mockTx{db: db}}

	created, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "admin123"}, deps)
	if err != nil || !created {
		t.Fatalf("expected first seed to create, got %v, %v", created, err)
	}
	created, err = ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "other", Password: "secret99"}, deps)
	if err != nil || created {
		t.Fatalf("expected second seed to do nothing, got %v, %v", created, err)
	}
	if len(db.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(db.users))
	}
	if db.users["admin"].PasswordHash == "admin123" {
		t.Error("password must be stored hashed")
	}
}

// TestExecuteSeedAdmin_ShortPassword tests weak seeds are refused.
func TestExecuteSeedAdmin_ShortPassword(t *testing.T) {
	if _, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "123"},
		SeedAdminDeps{Tx: &mockTx{db: newMemDB()}}); err == nil {
		t.Error("expected error for short password")
	}
}

// TestExecuteLogin tests credential checks against the stored hash.
func TestExecuteLogin(t *testing.T) {
	db := newMemDB()
	if _, err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{Username: "admin", Password: "admin123"},
		SeedAdminDeps{Tx: &mockTx{db: db}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	deps := LoginDeps{AccountStore: accountMock{db}}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"correct", "admin", "admin123", false},
		{"surrounding spaces in username", " admin ", "admin123", false},
		{"wrong password", "admin", "admin124", true},
		{"unknown user", "root", "admin123", true},
		{"empty password", "admin", "", true},
		{"empty username", "", "admin123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ExecuteLogin(context.Background(), LoginInput{Username: tt.username, Password: tt.password}, deps)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Username != "admin" {
				t.Errorf("expected admin, got %q", u.Username)
			}
		})
	}
}

// TestExecuteLogin_StoreFailure tests lookup failures surface instead of
// reading as bad credentials.
func TestExecuteLogin_StoreFailure(t *testing.T) {
	db := newMemDB()
	db.failOn["accounts.get"] = errDisk

	_, err := ExecuteLogin(context.Background(), LoginInput{Username: "admin", Password: "admin123"},
		LoginDeps{AccountStore: accountMock{db}})
	if !errors.Is(err, errDisk) {
		t.Fatalf("expected errDisk, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("store failure must not be reported as invalid credentials")
	}
}
