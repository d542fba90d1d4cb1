package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/verses"
)

const (
	MaxTopicNameLength = 100
	MaxVersesPerTopic  = 1000
)

// Topic groups verse references under a user-chosen name.
type Topic struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index:idx_topics_user_name,priority:1" json:"user_id"`
	Name   string `gorm:"index:idx_topics_user_name,priority:2;size:100" json:"name"`

	Verses []TopicVerse `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"verses"`
	User   User         `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}

// TopicVerse is a single verse reference inside a topic. References are
// deduplicated on their natural key (book, chapter, verseStart, verseCount).
type TopicVerse struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	TopicID    uint   `gorm:"index" json:"-"`
	BookID     string `gorm:"size:64" json:"bookId"`
	Chapter    int    `json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseCount int    `gorm:"default:1" json:"verseCount"`

	CreatedAt time.Time `json:"-"`
}

func (TopicVerse) TableName() string {
	return "topic_verses"
}

func (v TopicVerse) VerseRange() verses.Range {
	return verses.Range{BookID: v.BookID, Chapter: v.Chapter, VerseStart: v.VerseStart, VerseCount: v.VerseCount}
}

// TotalVerses sums the verse counts across all references in the topic.
func (t Topic) TotalVerses() int {
	total := 0
	for _, v := range t.Verses {
		total += v.VerseCount
	}
	return total
}

// UniqueBooks counts the distinct books referenced by the topic.
func (t Topic) UniqueBooks() int {
	books := make(map[string]struct{}, len(t.Verses))
	for _, v := range t.Verses {
		books[v.BookID] = struct{}{}
	}
	return len(books)
}

// ContainsVerse reports whether any reference in the topic intersects the
// inclusive span [verseStart, verseEnd]. A verseEnd of 0 means single verse.
func (t Topic) ContainsVerse(bookID string, chapter, verseStart, verseEnd int) bool {
	for _, v := range t.Verses {
		if v.VerseRange().ContainsVerse(bookID, chapter, verseStart, verseEnd) {
			return true
		}
	}
	return false
}
