package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/bible"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/services"
)

// ProgressStore defines the extra progress queries the controller needs
// beyond what the reading service covers.
type ProgressStore interface {
	GetChaptersForBook(userID uint, bookID string) (map[int]entities.VerseSet, error)
}

type ProgressController struct {
	reading *services.ReadingService
	store   ProgressStore
}

func NewProgressController(reading *services.ReadingService, store ProgressStore) *ProgressController {
	return &ProgressController{reading: reading, store: store}
}

type logReadingRequest struct {
	BookID  string `json:"bookId" binding:"required"`
	Chapter int    `json:"chapter" binding:"required"`
	Verses  []int  `json:"verses"`
}

// LogReading records a reading event and advances the streak.
// POST /api/progress/log-reading
func (pc *ProgressController) LogReading(c *gin.Context) {
	var req logReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId and chapter are required")
		return
	}

	if !bible.IsValidBook(req.BookID) {
		respondBadRequest(c, "unknown book: "+req.BookID)
		return
	}
	if req.Chapter < 1 || req.Chapter > bible.ChapterCount(req.BookID) {
		respondBadRequest(c, "chapter out of range for book")
		return
	}
	for _, v := range req.Verses {
		if v < 1 {
			respondBadRequest(c, "verse numbers must be positive")
			return
		}
	}

	result, err := pc.reading.LogReading(GetUserID(c), req.BookID, req.Chapter, req.Verses)
	if err != nil {
		respondInternalError(c, err, "log reading")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Summary returns the chapter map, total verse count and current streak.
// GET /api/progress
func (pc *ProgressController) Summary(c *gin.Context) {
	summary, err := pc.reading.GetSummary(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "progress summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Book returns per-chapter progress for a single book.
// GET /api/progress/:bookId
func (pc *ProgressController) Book(c *gin.Context) {
	bookID := c.Param("bookId")
	if !bible.IsValidBook(bookID) {
		respondBadRequest(c, "unknown book: "+bookID)
		return
	}

	chapters, err := pc.store.GetChaptersForBook(GetUserID(c), bookID)
	if err != nil {
		respondInternalError(c, err, "book progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookId":        bookID,
		"chapters":      chapters,
		"totalChapters": bible.ChapterCount(bookID),
	})
}
