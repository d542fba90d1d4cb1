// Package highlights provides database operations for verse highlight management.
//
// This package implements the HighlightsStore interface defined in internal/http/highlights.go.
package highlights

import (
	"errors"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// ErrDuplicate is returned when a highlight already exists for the exact
// same verse range.
var ErrDuplicate = errors.New("highlight already exists for this verse range")

// ColorCount is one bucket of the per-color highlight statistics.
type ColorCount struct {
	Color  entities.HighlightColor `json:"color"`
	Count  int64                   `json:"count"`
	Verses int64                   `json:"verses"`
}

// Repository handles all highlight database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new highlights repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new highlight. An existing highlight on the exact same
// range yields ErrDuplicate regardless of color.
func (r *Repository) Create(highlight *entities.Highlight) error {
	var count int64
	err := r.db.Model(&entities.Highlight{}).
		Where("user_id = ? AND book_id = ? AND chapter = ? AND verse_start = ? AND verse_count = ?",
			highlight.UserID, highlight.BookID, highlight.Chapter, highlight.VerseStart, highlight.VerseCount).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Create(highlight).Error
}

// GetByID retrieves one of the user's highlights.
func (r *Repository) GetByID(userID, id uint) (*entities.Highlight, error) {
	var highlight entities.Highlight
	err := r.db.Where("user_id = ?", userID).First(&highlight, id).Error
	if err != nil {
		return nil, err
	}
	return &highlight, nil
}

// List returns the user's highlights newest first, optionally filtered by
// book, chapter and color, with the total count for pagination.
func (r *Repository) List(userID uint, bookID string, chapter int, color entities.HighlightColor, limit, offset int) ([]entities.Highlight, int64, error) {
	query := r.db.Model(&entities.Highlight{}).Where("user_id = ?", userID)
	if bookID != "" {
		query = query.Where("book_id = ?", bookID)
	}
	if chapter > 0 {
		query = query.Where("chapter = ?", chapter)
	}
	if color != "" {
		query = query.Where("color = ?", color)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var highlights []entities.Highlight
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&highlights).Error
	return highlights, total, err
}

// FindInRange returns the user's highlights whose verse range overlaps the
// query range, newest first.
func (r *Repository) FindInRange(userID uint, query verses.Range) ([]entities.Highlight, error) {
	var candidates []entities.Highlight
	err := r.db.Where("user_id = ? AND book_id = ? AND chapter = ?", userID, query.BookID, query.Chapter).
		Order("created_at DESC, id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return verses.FindOverlapping(candidates, query), nil
}

// ColorStats counts the user's highlights and highlighted verses per
// color, most used first.
func (r *Repository) ColorStats(userID uint) ([]ColorCount, error) {
	var stats []ColorCount
	err := r.db.Model(&entities.Highlight{}).
		Select("color, COUNT(*) as count, SUM(verse_count) as verses").
		Where("user_id = ?", userID).
		Group("color").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

// Update saves changes to an existing highlight.
func (r *Repository) Update(highlight *entities.Highlight) error {
	return r.db.Save(highlight).Error
}

// Delete removes one of the user's highlights.
func (r *Repository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Highlight{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllForUser removes every highlight the user owns and reports how
// many were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Highlight{})
	return result.RowsAffected, result.Error
}

// Count returns the number of highlights the user owns.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Highlight{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
