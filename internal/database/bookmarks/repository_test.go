package bookmarks

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_bookmarks_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Bookmark{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func newBookmark(userID uint, bookID string, chapter, verseStart, verseCount int) *entities.Bookmark {
	return &entities.Bookmark{
		UserID:     userID,
		BookID:     bookID,
		Chapter:    chapter,
		VerseStart: verseStart,
		VerseCount: verseCount,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	b := newBookmark(1, "john", 3, 16, 1)
	err := repo.Create(b)

	require.NoError(t, err)
	assert.NotZero(t, b.ID)
}

func TestRepository_Create_ExactDuplicate(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 16, 3)))

	err := repo.Create(newBookmark(1, "john", 3, 16, 3))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRepository_Create_OverlapIsNotDuplicate(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 16, 3)))

	// Overlapping but not identical range is allowed.
	err := repo.Create(newBookmark(1, "john", 3, 17, 3))
	assert.NoError(t, err)
}

func TestRepository_Create_SameRangeDifferentUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 16, 1)))
	assert.NoError(t, repo.Create(newBookmark(2, "john", 3, 16, 1)))
}

func TestRepository_List_FiltersAndPagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 16, 1)))
	require.NoError(t, repo.Create(newBookmark(1, "john", 4, 1, 1)))
	require.NoError(t, repo.Create(newBookmark(1, "romans", 8, 28, 1)))
	require.NoError(t, repo.Create(newBookmark(2, "john", 3, 16, 1)))

	all, total, err := repo.List(1, "", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	johnOnly, total, err := repo.List(1, "john", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, johnOnly, 2)

	chapter3, total, err := repo.List(1, "john", 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, chapter3, 1)
	assert.Equal(t, 16, chapter3[0].VerseStart)

	paged, total, err := repo.List(1, "", 0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 2)
}

func TestRepository_FindInRange(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 1, 5)))   // 1-5
	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 10, 3)))  // 10-12
	require.NoError(t, repo.Create(newBookmark(1, "john", 4, 5, 1)))   // other chapter
	require.NoError(t, repo.Create(newBookmark(1, "romans", 3, 5, 1))) // other book

	got, err := repo.FindInRange(1, verses.Range{BookID: "john", Chapter: 3, VerseStart: 5, VerseCount: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].VerseStart)

	none, err := repo.FindInRange(1, verses.Range{BookID: "john", Chapter: 3, VerseStart: 7, VerseCount: 2})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_OrderingStableWithinTimestamp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Rows sharing one creation timestamp still come back newest-id
	// first.
	createdAt := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for _, start := range []int{1, 2, 3} {
		b := newBookmark(1, "john", 3, start, 1)
		b.CreatedAt = createdAt
		require.NoError(t, repo.Create(b))
	}

	listed, _, err := repo.List(1, "", 0, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, 3, listed[0].VerseStart)
	assert.Equal(t, 2, listed[1].VerseStart)
	assert.Equal(t, 1, listed[2].VerseStart)

	inRange, err := repo.FindInRange(1, verses.Range{BookID: "john", Chapter: 3, VerseStart: 1, VerseCount: 5})
	require.NoError(t, err)
	require.Len(t, inRange, 3)
	assert.Equal(t, 3, inRange[0].VerseStart)
	assert.Equal(t, 1, inRange[2].VerseStart)
}

func TestRepository_GetByID_ScopedToUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	b := newBookmark(1, "john", 3, 16, 1)
	require.NoError(t, repo.Create(b))

	got, err := repo.GetByID(1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repo.GetByID(2, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	b := newBookmark(1, "john", 3, 16, 1)
	require.NoError(t, repo.Create(b))

	// Another user cannot delete it.
	assert.ErrorIs(t, repo.Delete(2, b.ID), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(1, b.ID))
	_, err := repo.GetByID(1, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteAllForUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newBookmark(1, "john", 3, 16, 1)))
	require.NoError(t, repo.Create(newBookmark(1, "john", 4, 1, 1)))
	require.NoError(t, repo.Create(newBookmark(2, "john", 3, 16, 1)))

	deleted, err := repo.DeleteAllForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The other user's data stays.
	count, err := repo.Count(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
