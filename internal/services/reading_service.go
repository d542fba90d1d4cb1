package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/streak"
)

// ProgressRecorder is the slice of the progress store the reading service
// needs.
type ProgressRecorder interface {
	EnsureChapter(userID uint, bookID string, chapter int) error
	RecordVerses(userID uint, bookID string, chapter int, verseNumbers []int) (entities.VerseSet, error)
	GetAll(userID uint) (map[string]entities.VerseSet, error)
	TotalVersesRead(userID uint) (int, error)
}

// StreakStore is the slice of the user store the reading service needs.
type StreakStore interface {
	GetByID(id uint) (*entities.User, error)
	UpdateStreak(userID uint, s streak.State) error
}

// ReadingResult is the combined outcome of a reading-log event.
type ReadingResult struct {
	Chapter string            `json:"chapter"`
	Verses  entities.VerseSet `json:"verses"`
	Streak  streak.State      `json:"streak"`
}

// ReadingService coordinates the progress store and the streak state: a
// single logged reading touches the chapter record and advances the streak
// in one pass.
type ReadingService struct {
	progress ProgressRecorder
	users    StreakStore
	now      func() time.Time
}

// NewReadingService creates a reading service. now defaults to time.Now
// when nil.
func NewReadingService(progress ProgressRecorder, users StreakStore, now func() time.Time) *ReadingService {
	if now == nil {
		now = time.Now
	}
	return &ReadingService{progress: progress, users: users, now: now}
}

// LogReading records a reading event for one chapter. When verseNumbers is
// empty the chapter record is created without marking any verse. The
// user's streak advances exactly once per calendar day regardless of how
// many readings are logged.
func (s *ReadingService) LogReading(userID uint, bookID string, chapter int, verseNumbers []int) (*ReadingResult, error) {
	var set entities.VerseSet
	var err error
	if len(verseNumbers) == 0 {
		if err := s.progress.EnsureChapter(userID, bookID, chapter); err != nil {
			return nil, fmt.Errorf("failed to record chapter: %w", err)
		}
		set = entities.VerseSet{}
	} else {
		set, err = s.progress.RecordVerses(userID, bookID, chapter, verseNumbers)
		if err != nil {
			return nil, fmt.Errorf("failed to record verses: %w", err)
		}
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	advanced := user.Streak().Advance(s.now())
	if err := s.users.UpdateStreak(userID, advanced); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	return &ReadingResult{
		Chapter: entities.ProgressKey(bookID, chapter),
		Verses:  set,
		Streak:  advanced,
	}, nil
}

// Summary reports the user's overall progress: the chapter map, the total
// recorded verse count and the current streak.
type Summary struct {
	ChaptersRead      map[string]entities.VerseSet `json:"chaptersRead"`
	TotalChaptersRead int                          `json:"totalChaptersRead"`
	Streak            streak.State                 `json:"streak"`
}

// GetSummary assembles the user's progress summary. TotalChaptersRead
// counts recorded verses, matching the historical reporting of this
// figure.
func (s *ReadingService) GetSummary(userID uint) (*Summary, error) {
	chapters, err := s.progress.GetAll(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	total, err := s.progress.TotalVersesRead(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count verses: %w", err)
	}
	// A user with no row yet has no streak; report zero values rather
	// than failing the summary.
	var st streak.State
	user, err := s.users.GetByID(userID)
	if err == nil {
		st = user.Streak()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &Summary{
		ChaptersRead:      chapters,
		TotalChaptersRead: total,
		Streak:            st,
	}, nil
}
