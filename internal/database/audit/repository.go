// Package audit provides database operations for the audit event log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
)

// Repository handles all audit event database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record stores an audit event.
func (r *Repository) Record(event *entities.AuditEvent) error {
	return r.db.Create(event).Error
}

// ListForUser returns the user's audit events newest first.
func (r *Repository) ListForUser(userID uint, limit int) ([]entities.AuditEvent, error) {
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var events []entities.AuditEvent
	err := query.Find(&events).Error
	return events, err
}

// DeleteOlderThan prunes events created before the cutoff and reports how
// many were removed.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
