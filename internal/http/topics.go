package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/selahapp/selah/internal/bible"
	"github.com/selahapp/selah/internal/database/topics"
	"github.com/selahapp/selah/internal/entities"
	"github.com/selahapp/selah/internal/verses"
)

// TopicsStore defines database operations for topic management.
type TopicsStore interface {
	Create(topic *entities.Topic) error
	GetByID(userID, id uint) (*entities.Topic, error)
	List(userID uint, limit, offset int) ([]entities.Topic, int64, error)
	Rename(userID, id uint, name string) (*entities.Topic, error)
	AddVerse(userID, topicID uint, ref entities.TopicVerse) (*entities.Topic, error)
	RemoveVerse(userID, topicID uint, ref verses.Range) (*entities.Topic, error)
	FindByVerse(userID uint, bookID string, chapter, verseStart, verseEnd int) ([]entities.Topic, error)
	Delete(userID, id uint) error
}

type TopicsController struct {
	store TopicsStore
}

func NewTopicsController(store TopicsStore) *TopicsController {
	return &TopicsController{store: store}
}

type createTopicRequest struct {
	Name   string              `json:"name" binding:"required"`
	Verses []verseRangeRequest `json:"verses"`
}

type renameTopicRequest struct {
	Name string `json:"name" binding:"required"`
}

func validateTopicName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name must not be empty")
	}
	if len(name) > entities.MaxTopicNameLength {
		return "", errors.New("name exceeds maximum length")
	}
	return name, nil
}

// Create stores a new topic, optionally seeded with verse references.
// POST /api/topics
func (tc *TopicsController) Create(c *gin.Context) {
	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	name, err := validateTopicName(req.Name)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	refs := make([]entities.TopicVerse, 0, len(req.Verses))
	for _, v := range req.Verses {
		vr, err := v.toRange()
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		refs = append(refs, entities.TopicVerse{
			BookID:     vr.BookID,
			Chapter:    vr.Chapter,
			VerseStart: vr.VerseStart,
			VerseCount: vr.VerseCount,
		})
	}

	topic := &entities.Topic{
		UserID: GetUserID(c),
		Name:   name,
		Verses: refs,
	}

	if err := tc.store.Create(topic); err != nil {
		switch {
		case errors.Is(err, topics.ErrDuplicateName):
			respondConflict(c, err.Error())
		case errors.Is(err, topics.ErrTopicFull):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "create topic")
		}
		return
	}

	respondCreated(c, topic)
}

// List returns the user's topics with their verse references.
// GET /api/topics
func (tc *TopicsController) List(c *gin.Context) {
	page, limit, offset := parsePagination(c)

	items, total, err := tc.store.List(GetUserID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list topics")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, limit))
}

// topicStats summarizes one topic for the stats endpoint.
type topicStats struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	References  int    `json:"references"`
	TotalVerses int    `json:"totalVerses"`
	UniqueBooks int    `json:"uniqueBooks"`
}

// Stats summarizes the user's topics: reference and verse counts per
// topic plus overall totals.
// GET /api/topics/stats
func (tc *TopicsController) Stats(c *gin.Context) {
	items, total, err := tc.store.List(GetUserID(c), 0, 0)
	if err != nil {
		respondInternalError(c, err, "topic stats")
		return
	}

	stats := make([]topicStats, 0, len(items))
	totalVerses := 0
	for _, topic := range items {
		verseCount := topic.TotalVerses()
		totalVerses += verseCount
		stats = append(stats, topicStats{
			ID:          topic.ID,
			Name:        topic.Name,
			References:  len(topic.Verses),
			TotalVerses: verseCount,
			UniqueBooks: topic.UniqueBooks(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"topics":      stats,
		"count":       total,
		"totalVerses": totalVerses,
	})
}

// Get returns a single topic with its verse references.
// GET /api/topics/:id
func (tc *TopicsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	topic, err := tc.store.GetByID(GetUserID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "topic")
			return
		}
		respondInternalError(c, err, "get topic")
		return
	}

	c.JSON(http.StatusOK, topic)
}

// Rename changes a topic's name.
// PUT /api/topics/:id
func (tc *TopicsController) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req renameTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	name, err := validateTopicName(req.Name)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	topic, err := tc.store.Rename(GetUserID(c), id, name)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "topic")
		case errors.Is(err, topics.ErrDuplicateName):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "rename topic")
		}
		return
	}

	c.JSON(http.StatusOK, topic)
}

// AddVerse appends a verse reference to a topic.
// POST /api/topics/:id/verses
func (tc *TopicsController) AddVerse(c *gin.Context) {
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

	topic, err := tc.store.AddVerse(GetUserID(c), id, entities.TopicVerse{
		BookID:     vr.BookID,
		Chapter:    vr.Chapter,
		VerseStart: vr.VerseStart,
		VerseCount: vr.VerseCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "topic")
		case errors.Is(err, topics.ErrDuplicateVerse):
			respondConflict(c, err.Error())
		case errors.Is(err, topics.ErrTopicFull):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "add verse to topic")
		}
		return
	}

	c.JSON(http.StatusOK, topic)
}

// RemoveVerse deletes a verse reference from a topic by its natural key.
// DELETE /api/topics/:id/verses
func (tc *TopicsController) RemoveVerse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ref, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	topic, err := tc.store.RemoveVerse(GetUserID(c), id, ref)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "topic")
		case errors.Is(err, topics.ErrVerseNotFound):
			respondNotFound(c, "verse")
		default:
			respondInternalError(c, err, "remove verse from topic")
		}
		return
	}

	c.JSON(http.StatusOK, topic)
}

// FindByVerse returns topics containing a reference that intersects the
// queried verse or span.
// GET /api/topics/verse?book=&chapter=&verseStart=&verseEnd=
func (tc *TopicsController) FindByVerse(c *gin.Context) {
	bookID := c.Query("book")
	if !bible.IsValidBook(bookID) {
		respondBadRequest(c, "unknown book")
		return
	}

	chapter, err := strconv.Atoi(c.Query("chapter"))
	if err != nil || chapter < 1 {
		respondBadRequest(c, "chapter is required")
		return
	}

	verseStart, err := strconv.Atoi(c.Query("verseStart"))
	if err != nil || verseStart < 1 {
		respondBadRequest(c, "verseStart is required")
		return
	}

	verseEnd := 0
	if endStr := c.Query("verseEnd"); endStr != "" {
		verseEnd, err = strconv.Atoi(endStr)
		if err != nil || verseEnd < verseStart {
			respondBadRequest(c, "invalid verseEnd")
			return
		}
	}

	items, err := tc.store.FindByVerse(GetUserID(c), bookID, chapter, verseStart, verseEnd)
	if err != nil {
		respondInternalError(c, err, "find topics by verse")
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": items, "count": len(items)})
}

// Delete removes a topic and its verse references.
// DELETE /api/topics/:id
func (tc *TopicsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.Delete(GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "topic")
			return
		}
		respondInternalError(c, err, "delete topic")
		return
	}

	respondSuccess(c, "topic deleted")
}
