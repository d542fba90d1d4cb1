// Package notes provides database operations for verse note management.
//
// This package implements the NotesStore interface defined in internal/http/notes.go.
package notes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// ErrDuplicate is returned when a note already exists for the exact same
// verse range.
var ErrDuplicate = errors.New("note already exists for this verse range")

// Repository handles all note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new note. An existing note on the exact same range
// yields ErrDuplicate regardless of content.
func (r *Repository) Create(note *entities.Note) error {
	var count int64
	err := r.db.Model(&entities.Note{}).
		Where("user_id = ? AND book_id = ? AND chapter = ? AND verse_start = ? AND verse_count = ?",
			note.UserID, note.BookID, note.Chapter, note.VerseStart, note.VerseCount).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Create(note).Error
}

// GetByID retrieves one of the user's notes.
func (r *Repository) GetByID(userID, id uint) (*entities.Note, error) {
	var note entities.Note
	err := r.db.Where("user_id = ?", userID).First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns the user's notes newest first, optionally filtered by book
// and chapter, with the total count for pagination.
func (r *Repository) List(userID uint, bookID string, chapter, limit, offset int) ([]entities.Note, int64, error) {
	query := r.db.Model(&entities.Note{}).Where("user_id = ?", userID)
	if bookID != "" {
		query = query.Where("book_id = ?", bookID)
	}
	if chapter > 0 {
		query = query.Where("chapter = ?", chapter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []entities.Note
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&notes).Error
	return notes, total, err
}

// Search returns the user's notes whose content matches the query string,
// newest first.
func (r *Repository) Search(userID uint, text string, limit, offset int) ([]entities.Note, int64, error) {
	pattern := "%" + text + "%"
	query := r.db.Model(&entities.Note{}).
		Where("user_id = ? AND LOWER(content) LIKE LOWER(?)", userID, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []entities.Note
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&notes).Error
	return notes, total, err
}

// FindInRange returns the user's notes whose verse range overlaps the
// query range, newest first.
func (r *Repository) FindInRange(userID uint, query verses.Range) ([]entities.Note, error) {
	var candidates []entities.Note
	err := r.db.Where("user_id = ? AND book_id = ? AND chapter = ?", userID, query.BookID, query.Chapter).
		Order("created_at DESC, id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return verses.FindOverlapping(candidates, query), nil
}

// Update saves changes to an existing note.
func (r *Repository) Update(note *entities.Note) error {
	return r.db.Save(note).Error
}

// Delete removes one of the user's notes.
func (r *Repository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllForUser removes every note the user owns and reports how many
// were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Note{})
	return result.RowsAffected, result.Error
}

// Count returns the number of notes the user owns.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Note{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
