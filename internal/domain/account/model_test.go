package account_test

import (
	"testing"

	"bizkit/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr bool
	}{
		{
			name: "valid admin account",
			account: account.Account{
				ID:    "1",
				Email: "admin@bizkit.dev",
				Name:  "Admin",
				Role:  account.RoleAdmin,
			},
			wantErr: false,
		},
		{
			name: "valid user account",
			account: account.Account{
				ID:    "2",
				Email: "ops@bizkit.dev",
				Role:  account.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "empty email",
			account: account.Account{
				ID:   "3",
				Role: account.RoleAdmin,
			},
			wantErr: true,
		},
		{
			name: "invalid email no at sign",
			account: account.Account{
				ID:    "4",
				Email: "not-an-email",
				Role:  account.RoleAdmin,
			},
			wantErr: true,
		},
		{
			name: "invalid role",
			account: account.Account{
				ID:    "5",
				Email: "user@bizkit.dev",
				Role:  "superadmin",
			},
			wantErr: true,
		},
		{
			name: "empty role",
			account: account.Account{
				ID:    "6",
				Email: "user@bizkit.dev",
				Role:  "",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_SetPassword tests the SetPassword method.
func TestAccount_SetPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "securepassword123", false},
		{"exactly 12 chars", "123456789012", false},
		{"empty password", "", true},
		{"too short", "short", true},
		{"11 chars", "12345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &account.Account{}
			err := a.SetPassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && a.PasswordHash == "" {
				t.Error("SetPassword() should set PasswordHash")
			}
			if err == nil && a.PasswordHash == tt.password {
				t.Error("SetPassword() should hash the password, not store plaintext")
			}
		})
	}
}

// TestAccount_CheckPassword tests the CheckPassword method.
func TestAccount_CheckPassword(t *testing.T) {
	a := &account.Account{}
	if err := a.SetPassword("securepassword123"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"correct password", "securepassword123", false},
		{"wrong password", "wrongpassword123", true},
		{"empty password", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.CheckPassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_CheckPassword_NoHash tests CheckPassword with no hash set.
func TestAccount_CheckPassword_NoHash(t *testing.T) {
	a := &account.Account{}
	err := a.CheckPassword("anypassword1234")
	if err == nil {
		t.Error("CheckPassword() should fail when no hash is set")
	}
}

// TestAccount_IsAdmin tests the IsAdmin method.
func TestAccount_IsAdmin(t *testing.T) {
	tests := []struct {
		role    string
		isAdmin bool
	}{
		{account.RoleAdmin, true},
		{account.RoleUser, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			a := &account.Account{Role: tt.role}
			if a.IsAdmin() != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", a.IsAdmin(), tt.isAdmin)
			}
		})
	}
}
