// Package topics provides database operations for topic management.
//
// Topics group verse references under a user-chosen name; references are
// embedded rows deduplicated on their natural key. This package implements
// the TopicsStore interface defined in internal/http/topics.go.
package topics

import (
	"errors"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

var (
	// ErrDuplicateName is returned when the user already has a topic with
	// the same name.
	ErrDuplicateName = errors.New("topic with this name already exists")
	// ErrDuplicateVerse is returned when the verse reference is already in
	// the topic.
	ErrDuplicateVerse = errors.New("verse already exists in this topic")
	// ErrTopicFull is returned when adding a verse would exceed the
	// per-topic reference cap.
	ErrTopicFull = errors.New("topic has reached the maximum number of verses")
	// ErrVerseNotFound is returned when removing a reference the topic does
	// not contain.
	ErrVerseNotFound = errors.New("verse not found in this topic")
)

// Repository handles all topic database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new topics repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new topic, optionally with initial verse references.
// Duplicate references in the input collapse to one.
func (r *Repository) Create(topic *entities.Topic) error {
	var count int64
	err := r.db.Model(&entities.Topic{}).
		Where("user_id = ? AND name = ?", topic.UserID, topic.Name).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}

	topic.Verses = dedupeVerses(topic.Verses)
	if len(topic.Verses) > entities.MaxVersesPerTopic {
		return ErrTopicFull
	}
	return r.db.Create(topic).Error
}

// GetByID retrieves one of the user's topics with its verse references.
func (r *Repository) GetByID(userID, id uint) (*entities.Topic, error) {
	var topic entities.Topic
	err := r.db.Preload("Verses").Where("user_id = ?", userID).First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// List returns the user's topics newest first with their verse references,
// plus the total count for pagination.
func (r *Repository) List(userID uint, limit, offset int) ([]entities.Topic, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Topic{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []entities.Topic
	query := r.db.Preload("Verses").Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&topics).Error
	return topics, total, err
}

// Rename changes the topic's name, keeping names unique per user.
func (r *Repository) Rename(userID, id uint, name string) (*entities.Topic, error) {
	topic, err := r.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.db.Model(&entities.Topic{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	topic.Name = name
	if err := r.db.Save(topic).Error; err != nil {
		return nil, err
	}
	return topic, nil
}

// AddVerse appends a verse reference to the topic. References matching an
// existing one on the natural key are rejected with ErrDuplicateVerse; a
// topic at the reference cap rejects with ErrTopicFull.
func (r *Repository) AddVerse(userID, topicID uint, ref entities.TopicVerse) (*entities.Topic, error) {
	topic, err := r.GetByID(userID, topicID)
	if err != nil {
		return nil, err
	}

	for _, v := range topic.Verses {
		if v.VerseRange().Equal(ref.VerseRange()) {
			return nil, ErrDuplicateVerse
		}
	}
	if len(topic.Verses) >= entities.MaxVersesPerTopic {
		return nil, ErrTopicFull
	}

	ref.TopicID = topic.ID
	if err := r.db.Create(&ref).Error; err != nil {
		return nil, err
	}
	topic.Verses = append(topic.Verses, ref)
	return topic, nil
}

// RemoveVerse deletes the reference matching the natural key from the
// topic.
func (r *Repository) RemoveVerse(userID, topicID uint, ref verses.Range) (*entities.Topic, error) {
	topic, err := r.GetByID(userID, topicID)
	if err != nil {
		return nil, err
	}

	var target *entities.TopicVerse
	for i := range topic.Verses {
		if topic.Verses[i].VerseRange().Equal(ref) {
			target = &topic.Verses[i]
			break
		}
	}
	if target == nil {
		return nil, ErrVerseNotFound
	}

	if err := r.db.Delete(&entities.TopicVerse{}, target.ID).Error; err != nil {
		return nil, err
	}
	return r.GetByID(userID, topicID)
}

// FindByVerse returns the user's topics containing a reference that
// intersects the inclusive span [verseStart, verseEnd]. A verseEnd of 0
// means a single verse.
func (r *Repository) FindByVerse(userID uint, bookID string, chapter, verseStart, verseEnd int) ([]entities.Topic, error) {
	var candidates []entities.Topic
	err := r.db.Preload("Verses").
		Joins("JOIN topic_verses ON topic_verses.topic_id = topics.id").
		Where("topics.user_id = ? AND topic_verses.book_id = ? AND topic_verses.chapter = ?", userID, bookID, chapter).
		Group("topics.id").
		Order("topics.created_at DESC, topics.id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	matches := make([]entities.Topic, 0, len(candidates))
	for _, t := range candidates {
		if t.ContainsVerse(bookID, chapter, verseStart, verseEnd) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// Delete removes one of the user's topics together with its references.
func (r *Repository) Delete(userID, id uint) error {
	topic, err := r.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := r.db.Where("topic_id = ?", topic.ID).Delete(&entities.TopicVerse{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&entities.Topic{}, topic.ID).Error
}

// DeleteAllForUser removes every topic the user owns and reports how many
// were deleted.
func (r *Repository) DeleteAllForUser(userID uint) (int64, error) {
	var ids []uint
	if err := r.db.Model(&entities.Topic{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := r.db.Where("topic_id IN ?", ids).Delete(&entities.TopicVerse{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Topic{})
	return result.RowsAffected, result.Error
}

// Count returns the number of topics the user owns.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Topic{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func dedupeVerses(refs []entities.TopicVerse) []entities.TopicVerse {
	out := make([]entities.TopicVerse, 0, len(refs))
	for _, ref := range refs {
		dup := false
		for _, kept := range out {
			if kept.VerseRange().Equal(ref.VerseRange()) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, ref)
		}
	}
	return out
}
