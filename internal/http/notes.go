package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/database/notes"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// NotesStore defines database operations for note management.
type NotesStore interface {
	Create(note *entities.Note) error
	GetByID(userID, id uint) (*entities.Note, error)
	List(userID uint, bookID string, chapter, limit, offset int) ([]entities.Note, int64, error)
	FindInRange(userID uint, query verses.Range) ([]entities.Note, error)
	Search(userID uint, text string, limit, offset int) ([]entities.Note, int64, error)
	Update(note *entities.Note) error
	Delete(userID, id uint) error
}

type NotesController struct {
	store NotesStore
}

func NewNotesController(store NotesStore) *NotesController {
	return &NotesController{store: store}
}

type createNoteRequest struct {
	verseRangeRequest
	Content string `json:"content" binding:"required"`
}

type updateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

func validateNoteContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("content must not be empty")
	}
	if len(content) > entities.MaxNoteContentLength {
		return "", errors.New("content exceeds maximum length")
	}
	return content, nil
}

// Create attaches a note to a verse range.
// POST /api/notes
func (nc *NotesController) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId, chapter, verseStart and content are required")
		return
	}

	vr, err := req.toRange()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	content, err := validateNoteContent(req.Content)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	note := &entities.Note{
		UserID:     GetUserID(c),
		BookID:     vr.BookID,
		Chapter:    vr.Chapter,
		VerseStart: vr.VerseStart,
		VerseCount: vr.VerseCount,
		Content:    content,
	}

	if err := nc.store.Create(note); err != nil {
		if errors.Is(err, notes.ErrDuplicate) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create note")
		return
	}

	respondCreated(c, note)
}

// List returns the user's notes with optional book/chapter filters.
// GET /api/notes
func (nc *NotesController) List(c *gin.Context) {
	chapter, ok := parseChapterQuery(c)
	if !ok {
		return
	}
	page, limit, offset := parsePagination(c)

	items, total, err := nc.store.List(GetUserID(c), c.Query("book"), chapter, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, limit))
}

// Get returns a single note.
// GET /api/notes/:id
func (nc *NotesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := nc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "note")
			return
		}
		respondInternalError(c, err, "get note")
		return
	}

	c.JSON(http.StatusOK, note)
}

// FindInRange returns notes overlapping the queried verse range.
// GET /api/notes/range?book=&chapter=&verseStart=&verseCount=
func (nc *NotesController) FindInRange(c *gin.Context) {
	query, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	items, err := nc.store.FindInRange(GetUserID(c), query)
	if err != nil {
		respondInternalError(c, err, "find notes in range")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": items, "count": len(items)})
}

// Search finds notes whose content matches the query text.
// GET /api/notes/search?q=
func (nc *NotesController) Search(c *gin.Context) {
	text := strings.TrimSpace(c.Query("q"))
	if text == "" {
		respondBadRequest(c, "q is required")
		return
	}
	page, limit, offset := parsePagination(c)

	items, total, err := nc.store.Search(GetUserID(c), text, limit, offset)
	if err != nil {
		respondInternalError(c, err, "search notes")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, limit))
}

// Update replaces a note's content.
// PUT /api/notes/:id
func (nc *NotesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "content is required")
		return
	}

	content, err := validateNoteContent(req.Content)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	note, err := nc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "note")
			return
		}
		respondInternalError(c, err, "get note")
		return
	}

	note.Content = content
	if err := nc.store.Update(note); err != nil {
		respondInternalError(c, err, "update note")
		return
	}

	c.JSON(http.StatusOK, note)
}

// Delete removes a note.
// DELETE /api/notes/:id
func (nc *NotesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := nc.store.Delete(GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "note")
			return
		}
		respondInternalError(c, err, "delete note")
		return
	}

	respondSuccess(c, "note deleted")
}
