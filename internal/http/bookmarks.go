package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/bible"
	"github.com/selahapp/selah/internal/database/bookmarks"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// BookmarksStore defines database operations for bookmark management.
type BookmarksStore interface {
	Create(bookmark *entities.Bookmark) error
	GetByID(userID, id uint) (*entities.Bookmark, error)
	List(userID uint, bookID string, chapter, limit, offset int) ([]entities.Bookmark, int64, error)
	FindInRange(userID uint, query verses.Range) ([]entities.Bookmark, error)
	Update(bookmark *entities.Bookmark) error
	Delete(userID, id uint) error
}

type BookmarksController struct {
	store BookmarksStore
}

func NewBookmarksController(store BookmarksStore) *BookmarksController {
	return &BookmarksController{store: store}
}

// verseRangeRequest is the shared request body for range-bound resources.
type verseRangeRequest struct {
	BookID     string `json:"bookId" binding:"required"`
	Chapter    int    `json:"chapter" binding:"required"`
	VerseStart int    `json:"verseStart" binding:"required"`
	VerseCount int    `json:"verseCount"`
}

// toRange normalizes the request into a verse range, defaulting verseCount
// to a single verse, and validates it against the book table.
func (r verseRangeRequest) toRange() (verses.Range, error) {
	vr := verses.Range{
		BookID:     r.BookID,
		Chapter:    r.Chapter,
		VerseStart: r.VerseStart,
		VerseCount: r.VerseCount,
	}
	if vr.VerseCount == 0 {
		vr.VerseCount = 1
	}
	if err := vr.Validate(); err != nil {
		return verses.Range{}, err
	}
	if !bible.IsValidBook(vr.BookID) {
		return verses.Range{}, errors.New("unknown book: " + vr.BookID)
	}
	if vr.Chapter > bible.ChapterCount(vr.BookID) {
		return verses.Range{}, errors.New("chapter out of range for book")
	}
	return vr, nil
}

// Create adds a bookmark for a verse range.
// POST /api/bookmarks
func (bc *BookmarksController) Create(c *gin.Context) {
	var req verseRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId, chapter and verseStart are required")
		return
	}

	vr, err := req.toRange()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	bookmark := &entities.Bookmark{
		UserID:     GetUserID(c),
		BookID:     vr.BookID,
		Chapter:    vr.Chapter,
		VerseStart: vr.VerseStart,
		VerseCount: vr.VerseCount,
	}

	if err := bc.store.Create(bookmark); err != nil {
		if errors.Is(err, bookmarks.ErrDuplicate) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create bookmark")
		return
	}

	respondCreated(c, bookmark)
}

// List returns the user's bookmarks with optional book/chapter filters.
// GET /api/bookmarks
func (bc *BookmarksController) List(c *gin.Context) {
	chapter, ok := parseChapterQuery(c)
	if !ok {
		return
	}
	page, limit, offset := parsePagination(c)

	items, total, err := bc.store.List(GetUserID(c), c.Query("book"), chapter, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, limit))
}

// Get returns a single bookmark.
// GET /api/bookmarks/:id
func (bc *BookmarksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmark, err := bc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// FindInRange returns bookmarks overlapping the queried verse range.
// GET /api/bookmarks/range?book=&chapter=&verseStart=&verseCount=
func (bc *BookmarksController) FindInRange(c *gin.Context) {
	query, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	items, err := bc.store.FindInRange(GetUserID(c), query)
	if err != nil {
		respondInternalError(c, err, "find bookmarks in range")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": items, "count": len(items)})
}

// Update moves a bookmark to a different verse range.
// PUT /api/bookmarks/:id
func (bc *BookmarksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req verseRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId, chapter and verseStart are required")
		return
	}

	vr, err := req.toRange()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	bookmark, err := bc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "get bookmark")
		return
	}

	bookmark.BookID = vr.BookID
	bookmark.Chapter = vr.Chapter
	bookmark.VerseStart = vr.VerseStart
	bookmark.VerseCount = vr.VerseCount

	if err := bc.store.Update(bookmark); err != nil {
		if errors.Is(err, bookmarks.ErrDuplicate) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "update bookmark")
		return
	}

	c.JSON(http.StatusOK, bookmark)
}

// Delete removes a bookmark.
// DELETE /api/bookmarks/:id
func (bc *BookmarksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "delete bookmark")
		return
	}

	respondSuccess(c, "bookmark deleted")
}
