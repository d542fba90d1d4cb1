// Package users provides database operations for user accounts: lookup,
// creation, streak state, preferences and login lockout counters.
package users

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/streak"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new user.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by primary key.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTokenHash retrieves a user by the hash of their API token.
func (r *Repository) GetByTokenHash(hash string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("token_hash = ?", hash).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureDefault returns the user with the given ID, creating it with
// placeholder identity and default preferences when it does not exist.
// Used in single-user mode so streaks and preferences have a row to
// attach to. Idempotent.
func (r *Repository) EnsureDefault(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = entities.User{
		ID:       id,
		Name:     "Default",
		Email:    "default@localhost",
		Theme:    entities.ThemeLight,
		FontSize: entities.DefaultFontSize,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves changes to an existing user.
func (r *Repository) Update(user *entities.User) error {
	return r.db.Save(user).Error
}

// UpdateStreak writes only the streak columns.
func (r *Repository) UpdateStreak(userID uint, s streak.State) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).Updates(map[string]any{
		"streak_current":   s.Current,
		"streak_longest":   s.Longest,
		"streak_last_date": s.LastDate,
	}).Error
}

// UpdatePreferences writes the theme and font size columns.
func (r *Repository) UpdatePreferences(userID uint, theme entities.Theme, fontSize int) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).Updates(map[string]any{
		"theme":     theme,
		"font_size": fontSize,
	}).Error
}

// RecordFailedLogin bumps the failed attempt counter and, at the attempt
// cap, locks the account until lockUntil.
func (r *Repository) RecordFailedLogin(userID uint, maxAttempts int, lockUntil time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.FailedLoginCount++
		if user.FailedLoginCount >= maxAttempts {
			user.LockedUntil = &lockUntil
		}
		return tx.Save(&user).Error
	})
}

// RecordLogin clears the lockout state and stamps the login time.
func (r *Repository) RecordLogin(userID uint, at time.Time) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).Updates(map[string]any{
		"failed_login_count": 0,
		"locked_until":       nil,
		"last_login_at":      at,
	}).Error
}

// Delete removes a user account.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
