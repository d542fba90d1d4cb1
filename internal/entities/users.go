package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/streak"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:50" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string `gorm:"size:100" json:"-"`

	// API token, stored hashed; the plaintext is shown to the user once.
	TokenHash      string     `gorm:"index;size:64" json:"-"`
	TokenCreatedAt *time.Time `json:"-"`

	Theme    Theme `gorm:"size:10;default:'light'" json:"theme"`
	FontSize int   `gorm:"default:16" json:"font_size"`

	// Streak state, embedded in the user row. Mutated only through
	// streak.State.Advance on a reading-log event.
	StreakCurrent  int        `gorm:"default:0" json:"-"`
	StreakLongest  int        `gorm:"default:0" json:"-"`
	StreakLastDate *time.Time `json:"-"`

	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Streak assembles the streak columns into a streak.State.
func (u *User) Streak() streak.State {
	return streak.State{
		Current:  u.StreakCurrent,
		Longest:  u.StreakLongest,
		LastDate: u.StreakLastDate,
	}
}

// SetStreak writes a streak.State back onto the user columns.
func (u *User) SetStreak(s streak.State) {
	u.StreakCurrent = s.Current
	u.StreakLongest = s.Longest
	u.StreakLastDate = s.LastDate
}
