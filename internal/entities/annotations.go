package entities

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/verses"
)

type HighlightColor string

const (
	HighlightColorYellow HighlightColor = "yellow"
	HighlightColorGreen  HighlightColor = "green"
	HighlightColorBlue   HighlightColor = "blue"
	HighlightColorPink   HighlightColor = "pink"
	HighlightColorPurple HighlightColor = "purple"
	HighlightColorOrange HighlightColor = "orange"
	HighlightColorRed    HighlightColor = "red"
)

// ValidHighlightColor reports whether c is one of the supported colors.
func ValidHighlightColor(c HighlightColor) bool {
	switch c {
	case HighlightColorYellow, HighlightColorGreen, HighlightColorBlue,
		HighlightColorPink, HighlightColorPurple, HighlightColorOrange,
		HighlightColorRed:
		return true
	}
	return false
}

// MaxNoteContentLength caps note content size.
const MaxNoteContentLength = 10000

// Bookmark marks a verse range for later reference.
type Bookmark struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index:idx_bookmarks_user_book_chapter,priority:1" json:"user_id"`
	BookID     string `gorm:"index:idx_bookmarks_user_book_chapter,priority:2;size:64" json:"bookId"`
	Chapter    int    `gorm:"index:idx_bookmarks_user_book_chapter,priority:3" json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseCount int    `gorm:"default:1" json:"verseCount"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (b Bookmark) VerseRange() verses.Range {
	return verses.Range{BookID: b.BookID, Chapter: b.Chapter, VerseStart: b.VerseStart, VerseCount: b.VerseCount}
}

// Note attaches free-form text to a verse range.
type Note struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index:idx_notes_user_book_chapter,priority:1" json:"user_id"`
	BookID     string `gorm:"index:idx_notes_user_book_chapter,priority:2;size:64" json:"bookId"`
	Chapter    int    `gorm:"index:idx_notes_user_book_chapter,priority:3" json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseCount int    `gorm:"default:1" json:"verseCount"`
	Content    string `gorm:"type:text" json:"content"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Note) TableName() string {
	return "notes"
}

func (n Note) VerseRange() verses.Range {
	return verses.Range{BookID: n.BookID, Chapter: n.Chapter, VerseStart: n.VerseStart, VerseCount: n.VerseCount}
}

// Highlight colors a verse range.
type Highlight struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index:idx_highlights_user_book_chapter,priority:1" json:"user_id"`
	BookID     string         `gorm:"index:idx_highlights_user_book_chapter,priority:2;size:64" json:"bookId"`
	Chapter    int            `gorm:"index:idx_highlights_user_book_chapter,priority:3" json:"chapter"`
	VerseStart int            `json:"verseStart"`
	VerseCount int            `gorm:"default:1" json:"verseCount"`
	Color      HighlightColor `gorm:"size:10;default:'yellow';index" json:"color"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Highlight) TableName() string {
	return "highlights"
}

func (h Highlight) VerseRange() verses.Range {
	return verses.Range{BookID: h.BookID, Chapter: h.Chapter, VerseStart: h.VerseStart, VerseCount: h.VerseCount}
}

// VerseReference renders a human-readable reference like "john 3:16-18".
func (h Highlight) VerseReference() string {
	return FormatVerseReference(h.VerseRange())
}

// FormatVerseReference renders a range as "book chapter:start" or
// "book chapter:start-end" for multi-verse ranges.
func FormatVerseReference(r verses.Range) string {
	if r.VerseCount > 1 {
		return fmt.Sprintf("%s %d:%d-%d", r.BookID, r.Chapter, r.VerseStart, r.VerseEnd())
	}
	return fmt.Sprintf("%s %d:%d", r.BookID, r.Chapter, r.VerseStart)
}
