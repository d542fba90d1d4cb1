// Package bookmarks provides database operations for verse bookmark management.
//
// This package implements the BookmarksStore interface defined in internal/http/bookmarks.go.
package bookmarks

import (
	"errors"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// ErrDuplicate is returned when a bookmark already exists for the exact
// same verse range.
var ErrDuplicate = errors.New("bookmark already exists for this verse range")

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new bookmark. An existing bookmark on the exact same
// range (book, chapter, verseStart, verseCount) yields ErrDuplicate.
func (r *Repository) Create(bookmark *entities.Bookmark) error {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).
		Where("user_id = ? AND book_id = ? AND chapter = ? AND verse_start = ? AND verse_count = ?",
			bookmark.UserID, bookmark.BookID, bookmark.Chapter, bookmark.VerseStart, bookmark.VerseCount).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Create(bookmark).Error
}

// GetByID retrieves one of the user's bookmarks.
func (r *Repository) GetByID(userID, id uint) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	err := r.db.Where("user_id = ?", userID).First(&bookmark, id).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// List returns the user's bookmarks newest first, optionally filtered by
// book and chapter, with the total count for pagination.
func (r *Repository) List(userID uint, bookID string, chapter, limit, offset int) ([]entities.Bookmark, int64, error) {
	query := r.db.Model(&entities.Bookmark{}).Where("user_id = ?", userID)
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

	var bookmarks []entities.Bookmark
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&bookmarks).Error
	return bookmarks, total, err
}

// FindInRange returns the user's bookmarks whose verse range overlaps the
// query range, newest first.
func (r *Repository) FindInRange(userID uint, query verses.Range) ([]entities.Bookmark, error) {
	var candidates []entities.Bookmark
	err := r.db.Where("user_id = ? AND book_id = ? AND chapter = ?", userID, query.BookID, query.Chapter).
		Order("created_at DESC, id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return verses.FindOverlapping(candidates, query), nil
}

// Update saves changes to an existing bookmark. Moving the bookmark onto
// a range another bookmark already covers yields ErrDuplicate.
func (r *Repository) Update(bookmark *entities.Bookmark) error {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).
		Where("user_id = ? AND book_id = ? AND chapter = ? AND verse_start = ? AND verse_count = ? AND id <> ?",
			bookmark.UserID, bookmark.BookID, bookmark.Chapter, bookmark.VerseStart, bookmark.VerseCount, bookmark.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Save(bookmark).Error
}

// Delete removes one of the user's bookmarks.
func (r *Repository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Bookmark{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllForUser removes every bookmark the user owns and reports how
// many were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Bookmark{})
	return result.RowsAffected, result.Error
}

// Count returns the number of bookmarks the user owns.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
