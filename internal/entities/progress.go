package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// VerseSet is a set of verse numbers persisted as a JSON integer array,
// keeping the stored shape compatible with the original document layout
// ("{bookId}:{chapter}" -> [verse, ...]). Duplicates collapse; order is
// normalized ascending on write for deterministic storage.
type VerseSet []int

// Contains reports whether the set holds the given verse.
func (s VerseSet) Contains(verse int) bool {
	for _, v := range s {
		if v == verse {
			return true
		}
	}
	return false
}

// Add returns the set with verse included, without duplicating.
func (s VerseSet) Add(verse int) VerseSet {
	if s.Contains(verse) {
		return s
	}
	return append(s, verse)
}

// Value implements driver.Valuer, serializing as a sorted JSON array.
func (s VerseSet) Value() (driver.Value, error) {
	if s == nil {
		s = VerseSet{}
	}
	sorted := make([]int, len(s))
	copy(sorted, s)
	sort.Ints(sorted)
	data, err := json.Marshal(sorted)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *VerseSet) Scan(value any) error {
	if value == nil {
		*s = VerseSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into VerseSet", value)
	}
	if len(data) == 0 {
		*s = VerseSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// ProgressEntry records which verses of one chapter a user has read.
// One row per (user, book, chapter); the full per-user progress record is
// the set of rows, exposed as a "{bookId}:{chapter}" keyed map.
type ProgressEntry struct {
	ID      uint     `gorm:"primaryKey" json:"-"`
	UserID  uint     `gorm:"uniqueIndex:idx_progress_user_book_chapter,priority:1" json:"-"`
	BookID  string   `gorm:"uniqueIndex:idx_progress_user_book_chapter,priority:2;size:64" json:"bookId"`
	Chapter int      `gorm:"uniqueIndex:idx_progress_user_book_chapter,priority:3" json:"chapter"`
	Verses  VerseSet `gorm:"type:text" json:"verses"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (ProgressEntry) TableName() string {
	return "progress_entries"
}

// Key returns the composite map key used in API responses and matching the
// original persisted shape.
func (e ProgressEntry) Key() string {
	return ProgressKey(e.BookID, e.Chapter)
}

// ProgressKey builds the "{bookId}:{chapter}" composite key.
func ProgressKey(bookID string, chapter int) string {
	return fmt.Sprintf("%s:%d", bookID, chapter)
}
