package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "password123", nil},
		{"minimum length", "12345678", nil},
		{"too short", "1234567", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"too long", strings.Repeat("a", 73), ErrPasswordTooLong},
		{"max length", strings.Repeat("a", 72), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, 10)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("HashPassword() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("HashPassword() unexpected error: %v", err)
			}
			if hash == tt.password {
				t.Error("HashPassword() returned plaintext")
			}
			if err := CheckPassword(tt.password, hash); err != nil {
				t.Errorf("CheckPassword() failed for valid password: %v", err)
			}
		})
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("password123", 10)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if err := CheckPassword("wrongpassword", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword() error = %v, want ErrInvalidPassword", err)
	}
}

func TestGenerateAPIToken(t *testing.T) {
	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		t.Fatalf("GenerateAPIToken() failed: %v", err)
	}

	if len(plaintext) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(plaintext))
	}
	if hash != HashToken(plaintext) {
		t.Error("hash does not match HashToken(plaintext)")
	}

	// Tokens must be unique across calls.
	other, _, err := GenerateAPIToken()
	if err != nil {
		t.Fatalf("GenerateAPIToken() failed: %v", err)
	}
	if other == plaintext {
		t.Error("GenerateAPIToken() produced duplicate tokens")
	}
}
