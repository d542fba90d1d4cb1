package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/database/highlights"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// HighlightsStore defines database operations for highlight management.
type HighlightsStore interface {
	Create(highlight *entities.Highlight) error
	GetByID(userID, id uint) (*entities.Highlight, error)
	List(userID uint, bookID string, chapter int, color entities.HighlightColor, limit, offset int) ([]entities.Highlight, int64, error)
	FindInRange(userID uint, query verses.Range) ([]entities.Highlight, error)
	ColorStats(userID uint) ([]highlights.ColorCount, error)
	Update(highlight *entities.Highlight) error
	Delete(userID, id uint) error
}

type HighlightsController struct {
	store HighlightsStore
}

func NewHighlightsController(store HighlightsStore) *HighlightsController {
	return &HighlightsController{store: store}
}

type createHighlightRequest struct {
	verseRangeRequest
	Color entities.HighlightColor `json:"color"`
}

type updateHighlightRequest struct {
	Color entities.HighlightColor `json:"color" binding:"required"`
}

// Create adds a highlight over a verse range.
// POST /api/highlights
func (hc *HighlightsController) Create(c *gin.Context) {
	var req createHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId, chapter and verseStart are required")
		return
	}

	vr, err := req.toRange()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	color := req.Color
	if color == "" {
		color = entities.HighlightColorYellow
	}
	if !entities.ValidHighlightColor(color) {
		respondBadRequest(c, "unsupported highlight color")
		return
	}

	highlight := &entities.Highlight{
		UserID:     GetUserID(c),
		BookID:     vr.BookID,
		Chapter:    vr.Chapter,
		VerseStart: vr.VerseStart,
		VerseCount: vr.VerseCount,
		Color:      color,
	}

	if err := hc.store.Create(highlight); err != nil {
		if errors.Is(err, highlights.ErrDuplicate) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create highlight")
		return
	}

	respondCreated(c, highlight)
}

// List returns the user's highlights with optional book/chapter/color filters.
// GET /api/highlights
func (hc *HighlightsController) List(c *gin.Context) {
	chapter, ok := parseChapterQuery(c)
	if !ok {
		return
	}

	color := entities.HighlightColor(c.Query("color"))
	if color != "" && !entities.ValidHighlightColor(color) {
		respondBadRequest(c, "unsupported highlight color")
		return
	}

	page, limit, offset := parsePagination(c)

	items, total, err := hc.store.List(GetUserID(c), c.Query("book"), chapter, color, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list highlights")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, limit))
}

// Get returns a single highlight.
// GET /api/highlights/:id
func (hc *HighlightsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	highlight, err := hc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "highlight")
			return
		}
		respondInternalError(c, err, "get highlight")
		return
	}

	c.JSON(http.StatusOK, highlight)
}

// FindInRange returns highlights overlapping the queried verse range.
// GET /api/highlights/range?book=&chapter=&verseStart=&verseCount=
func (hc *HighlightsController) FindInRange(c *gin.Context) {
	query, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	items, err := hc.store.FindInRange(GetUserID(c), query)
	if err != nil {
		respondInternalError(c, err, "find highlights in range")
		return
	}

	c.JSON(http.StatusOK, gin.H{"highlights": items, "count": len(items)})
}

// ColorStats returns highlight counts grouped by color.
// GET /api/highlights/stats
func (hc *HighlightsController) ColorStats(c *gin.Context) {
	stats, err := hc.store.ColorStats(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "highlight color stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"colors": stats})
}

// Update changes a highlight's color.
// PUT /api/highlights/:id
func (hc *HighlightsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "color is required")
		return
	}
	if !entities.ValidHighlightColor(req.Color) {
		respondBadRequest(c, "unsupported highlight color")
		return
	}

	highlight, err := hc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "highlight")
			return
		}
		respondInternalError(c, err, "get highlight")
		return
	}

	highlight.Color = req.Color
	if err := hc.store.Update(highlight); err != nil {
		respondInternalError(c, err, "update highlight")
		return
	}

	c.JSON(http.StatusOK, highlight)
}

// Delete removes a highlight.
// DELETE /api/highlights/:id
func (hc *HighlightsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := hc.store.Delete(GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "highlight")
			return
		}
		respondInternalError(c, err, "delete highlight")
		return
	}

	respondSuccess(c, "highlight deleted")
}
