package auth

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/config"
	"github.com/selahapp/selah/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			userName: "Anna",
			email:    "anna@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "missing name",
			userName: "",
			email:    "test@example.com",
			password: "password123",
			wantErr:  ErrNameRequired,
		},
		{
			name:     "missing email",
			userName: "Test",
			email:    "",
			password: "password123",
			wantErr:  ErrEmailRequired,
		},
		{
			name:     "missing password",
			userName: "Test",
			email:    "test@example.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "password too short",
			userName: "Test",
			email:    "test@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "invalid email",
			userName: "Test",
			email:    "not-an-email",
			password: "password123",
			wantErr:  ErrEmailInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() unexpected error: %v", err)
			}
			if user.ID == 0 {
				t.Error("Register() user has no ID")
			}
			if user.PasswordHash == tt.password {
				t.Error("Register() stored plaintext password")
			}
			if user.Theme != entities.ThemeLight || user.FontSize != entities.DefaultFontSize {
				t.Error("Register() did not set default preferences")
			}
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	if _, err := svc.Register("Anna", "anna@example.com", "password123"); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}

	_, err := svc.Register("Other", "anna@example.com", "different123")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	if _, err := svc.Register("Anna", "anna@example.com", "password123"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate("anna@example.com", "password123")
		if err != nil {
			t.Fatalf("Authenticate() failed: %v", err)
		}
		if user.LastLoginAt == nil {
			t.Error("Authenticate() did not stamp last login")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("anna@example.com", "wrongpassword")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidPassword", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "password123")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Authenticate() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_Authenticate_Lockout(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{
		BcryptCost:       10,
		MaxLoginAttempts: 5,
		LockoutDuration:  30 * time.Minute,
	})

	user, err := svc.Register("Anna", "anna@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.Authenticate("anna@example.com", "wrongpassword"); err == nil {
			t.Fatal("Authenticate() should fail with wrong password")
		}
	}

	// Even the correct password is rejected while locked.
	_, err = svc.Authenticate("anna@example.com", "password123")
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Authenticate() error = %v, want ErrAccountLocked", err)
	}

	// Expire the lockout and try again.
	past := time.Now().Add(-time.Minute)
	db.Model(&entities.User{}).Where("id = ?", user.ID).Update("locked_until", past)

	if _, err := svc.Authenticate("anna@example.com", "password123"); err != nil {
		t.Errorf("Authenticate() after lockout expiry failed: %v", err)
	}
}

func TestService_Tokens(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10, TokenExpiry: time.Hour})

	user, err := svc.Register("Anna", "anna@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	token, err := svc.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	validated, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() failed: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("ValidateToken() returned user %d, want %d", validated.ID, user.ID)
	}

	if _, err := svc.ValidateToken("bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(bogus) error = %v, want ErrInvalidToken", err)
	}

	if err := svc.RevokeToken(user.ID); err != nil {
		t.Fatalf("RevokeToken() failed: %v", err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() after revoke error = %v, want ErrInvalidToken", err)
	}
}

func TestService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	user, err := svc.Register("Anna", "anna@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrongpassword", "newpassword123"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("ChangePassword() with wrong old password error = %v, want ErrInvalidPassword", err)
	}

	if err := svc.ChangePassword(user.ID, "password123", "newpassword123"); err != nil {
		t.Fatalf("ChangePassword() failed: %v", err)
	}

	if _, err := svc.Authenticate("anna@example.com", "newpassword123"); err != nil {
		t.Errorf("Authenticate() with new password failed: %v", err)
	}
}
