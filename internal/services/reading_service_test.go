package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/database/progress"
	"github.com/selahapp/selah/internal/database/users"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/streak"
)

type fakeProgress struct {
	chapters map[string]entities.VerseSet
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{chapters: make(map[string]entities.VerseSet)}
}

func (f *fakeProgress) EnsureChapter(userID uint, bookID string, chapter int) error {
	key := entities.ProgressKey(bookID, chapter)
	if _, ok := f.chapters[key]; !ok {
		f.chapters[key] = entities.VerseSet{}
	}
	return nil
}

func (f *fakeProgress) RecordVerses(userID uint, bookID string, chapter int, verseNumbers []int) (entities.VerseSet, error) {
	key := entities.ProgressKey(bookID, chapter)
	set := f.chapters[key]
	for _, v := range verseNumbers {
		set = set.Add(v)
	}
	f.chapters[key] = set
	return set, nil
}

func (f *fakeProgress) GetAll(userID uint) (map[string]entities.VerseSet, error) {
	return f.chapters, nil
}

func (f *fakeProgress) TotalVersesRead(userID uint) (int, error) {
	total := 0
	for _, set := range f.chapters {
		total += len(set)
	}
	return total, nil
}

type fakeUsers struct {
	user entities.User
}

func (f *fakeUsers) GetByID(id uint) (*entities.User, error) {
	u := f.user
	return &u, nil
}

func (f *fakeUsers) UpdateStreak(userID uint, s streak.State) error {
	f.user.SetStreak(s)
	return nil
}

func TestReadingService_LogReading_FirstRead(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc := NewReadingService(newFakeProgress(), &fakeUsers{}, func() time.Time { return now })

	result, err := svc.LogReading(1, "john", 3, []int{16})
	require.NoError(t, err)

	assert.Equal(t, "john:3", result.Chapter)
	assert.Equal(t, entities.VerseSet{16}, result.Verses)
	assert.Equal(t, 1, result.Streak.Current)
	assert.Equal(t, 1, result.Streak.Longest)
	require.NotNil(t, result.Streak.LastDate)
	assert.Equal(t, streak.DateOnly(now), *result.Streak.LastDate)
}

func TestReadingService_LogReading_NoVersesCreatesChapter(t *testing.T) {
	progress := newFakeProgress()
	svc := NewReadingService(progress, &fakeUsers{}, nil)

	result, err := svc.LogReading(1, "genesis", 1, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Verses)
	assert.Contains(t, progress.chapters, "genesis:1")
	assert.Empty(t, progress.chapters["genesis:1"])
}

func TestReadingService_LogReading_SameDayDoesNotDoubleCount(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	users := &fakeUsers{}
	svc := NewReadingService(newFakeProgress(), users, func() time.Time { return now })

	_, err := svc.LogReading(1, "john", 3, []int{16})
	require.NoError(t, err)

	result, err := svc.LogReading(1, "john", 4, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak.Current)
}

func TestReadingService_LogReading_ConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	users := &fakeUsers{}
	svc := NewReadingService(newFakeProgress(), users, func() time.Time { return now })

	_, err := svc.LogReading(1, "john", 3, []int{16})
	require.NoError(t, err)

	now = now.AddDate(0, 0, 1)
	result, err := svc.LogReading(1, "john", 4, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak.Current)
	assert.Equal(t, 2, result.Streak.Longest)
}

func TestReadingService_GetSummary(t *testing.T) {
	progress := newFakeProgress()
	users := &fakeUsers{}
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc := NewReadingService(progress, users, func() time.Time { return now })

	_, err := svc.LogReading(1, "john", 3, []int{16, 17})
	require.NoError(t, err)
	_, err = svc.LogReading(1, "psalms", 23, []int{1})
	require.NoError(t, err)

	summary, err := svc.GetSummary(1)
	require.NoError(t, err)

	assert.Len(t, summary.ChaptersRead, 2)
	assert.Equal(t, 3, summary.TotalChaptersRead)
	assert.Equal(t, 1, summary.Streak.Current)
}

// setupRepoDB builds the service on the real repositories, the way
// entrypoint.Run wires it.
func setupRepoDB(t *testing.T) (*users.Repository, *progress.Repository, func()) {
	dbPath := "./test_services_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.ProgressEntry{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return users.NewRepository(db), progress.NewRepository(db), cleanup
}

func TestReadingService_SeededDefaultUser(t *testing.T) {
	usersRepo, progressRepo, cleanup := setupRepoDB(t)
	defer cleanup()

	// Startup in single-user mode seeds this row.
	_, err := usersRepo.EnsureDefault(auth.DefaultUserID)
	require.NoError(t, err)

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc := NewReadingService(progressRepo, usersRepo, func() time.Time { return now })

	result, err := svc.LogReading(auth.DefaultUserID, "john", 3, []int{16})
	require.NoError(t, err)
	assert.Equal(t, "john:3", result.Chapter)
	assert.Equal(t, 1, result.Streak.Current)

	summary, err := svc.GetSummary(auth.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalChaptersRead)
	assert.Equal(t, 1, summary.Streak.Current)
}

func TestReadingService_GetSummary_UnknownUser(t *testing.T) {
	usersRepo, progressRepo, cleanup := setupRepoDB(t)
	defer cleanup()

	svc := NewReadingService(progressRepo, usersRepo, nil)

	summary, err := svc.GetSummary(42)
	require.NoError(t, err)
	assert.Empty(t, summary.ChaptersRead)
	assert.Zero(t, summary.TotalChaptersRead)
	assert.Zero(t, summary.Streak.Current)
	assert.Nil(t, summary.Streak.LastDate)
}
