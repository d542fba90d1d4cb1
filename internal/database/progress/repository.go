// Package progress provides database operations for per-chapter reading
// progress. One row exists per (user, book, chapter); the full progress
// record is exposed as a "{bookId}:{chapter}" keyed map.
//
// This package implements the ProgressStore interface defined in
// internal/http/progress.go.
package progress

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selahapp/selah/internal/entities"
)

// Repository handles all reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns the user's full progress record as a chapter-keyed map.
// A user with no recorded progress gets an empty map.
func (r *Repository) GetAll(userID uint) (map[string]entities.VerseSet, error) {
	var rows []entities.ProgressEntry
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]entities.VerseSet, len(rows))
	for _, row := range rows {
		out[row.Key()] = row.Verses
	}
	return out, nil
}

// GetChaptersForBook returns the chapters of one book the user has touched,
// keyed by chapter number.
func (r *Repository) GetChaptersForBook(userID uint, bookID string) (map[int]entities.VerseSet, error) {
	var rows []entities.ProgressEntry
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("chapter ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[int]entities.VerseSet, len(rows))
	for _, row := range rows {
		out[row.Chapter] = row.Verses
	}
	return out, nil
}

// EnsureChapter creates the chapter's row with an empty verse set when it
// does not exist yet. An existing row is left untouched.
func (r *Repository) EnsureChapter(userID uint, bookID string, chapter int) error {
	entry := entities.ProgressEntry{
		UserID:  userID,
		BookID:  bookID,
		Chapter: chapter,
		Verses:  entities.VerseSet{},
	}
	// ON CONFLICT DO NOTHING on the (user, book, chapter) unique index
	// keeps concurrent first-touches race-free.
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// RecordVerses marks verses of a chapter as read, creating the chapter row
// if needed. Re-recording an already read verse is a no-op.
func (r *Repository) RecordVerses(userID uint, bookID string, chapter int, verseNumbers []int) (entities.VerseSet, error) {
	var result entities.VerseSet
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var entry entities.ProgressEntry
		err := tx.Where("user_id = ? AND book_id = ? AND chapter = ?", userID, bookID, chapter).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = entities.ProgressEntry{
				UserID:  userID,
				BookID:  bookID,
				Chapter: chapter,
				Verses:  entities.VerseSet{},
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
				return err
			}
			// Re-read in case a concurrent insert won the conflict.
			if err := tx.Where("user_id = ? AND book_id = ? AND chapter = ?", userID, bookID, chapter).
				First(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, v := range verseNumbers {
			entry.Verses = entry.Verses.Add(v)
		}
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		result = entry.Verses
		return nil
	})
	return result, err
}

// TotalVersesRead sums the recorded verse counts across all chapters. The
// original tracker reported this figure as "total chapters read"; the
// behavior is kept.
func (r *Repository) TotalVersesRead(userID uint) (int, error) {
	var rows []entities.ProgressEntry
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return 0, err
	}

	total := 0
	for _, row := range rows {
		total += len(row.Verses)
	}
	return total, nil
}

// DeleteAllForUser removes the user's entire progress record and reports
// how many chapter rows were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.ProgressEntry{})
	return result.RowsAffected, result.Error
}
