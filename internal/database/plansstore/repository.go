// Package plansstore provides database operations for reading plan
// management.
//
// This package implements the PlansStore interface defined in
// internal/http/plans.go.
package plansstore

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
)

// ErrDayOutOfRange is returned when a completion targets a day number the
// plan does not have.
var ErrDayOutOfRange = errors.New("day number is out of range for this plan")

// Repository handles all reading plan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reading plans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new reading plan with its precomputed schedule.
func (r *Repository) Create(plan *entities.ReadingPlan) error {
	return r.db.Create(plan).Error
}

// GetByID retrieves one of the user's plans.
func (r *Repository) GetByID(userID, id uint) (*entities.ReadingPlan, error) {
	var plan entities.ReadingPlan
	err := r.db.Where("user_id = ?", userID).First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns the user's plans newest first, optionally filtered by
// status.
func (r *Repository) List(userID uint, status entities.PlanStatus) ([]entities.ReadingPlan, error) {
	query := r.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var plans []entities.ReadingPlan
	err := query.Order("created_at DESC, id DESC").Find(&plans).Error
	return plans, err
}

// Update saves changes to an existing plan.
func (r *Repository) Update(plan *entities.ReadingPlan) error {
	return r.db.Save(plan).Error
}

// CompleteDay marks a day of the plan as completed. Completing the last
// outstanding day moves the plan to completed status. Re-completing a day
// is a no-op.
func (r *Repository) CompleteDay(userID, planID uint, dayNumber int, at time.Time) (*entities.ReadingPlan, error) {
	plan, err := r.GetByID(userID, planID)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > len(plan.DailyReadings) {
		return nil, ErrDayOutOfRange
	}

	day := &plan.DailyReadings[dayNumber-1]
	if !day.IsCompleted {
		day.IsCompleted = true
		day.CompletedAt = &at
	}

	allDone := true
	for _, d := range plan.DailyReadings {
		if !d.IsCompleted {
			allDone = false
			break
		}
	}
	if allDone {
		plan.Status = entities.PlanStatusCompleted
	}

	if err := r.db.Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes one of the user's plans.
func (r *Repository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.ReadingPlan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllForUser removes every plan the user owns and reports how many
// were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.ReadingPlan{})
	return result.RowsAffected, result.Error
}
