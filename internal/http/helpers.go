package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/verses"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when auth is disabled or no user is authenticated.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// newPaginatedResponse assembles pagination metadata around the data slice.
func newPaginatedResponse(data any, total int64, page, limit int) PaginatedResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/limit query parameters with sane bounds.
// Defaults to page 1, limit 50; limit is capped at 100.
func parsePagination(c *gin.Context) (page, limit, offset int) {
	page = 1
	limit = 50

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	return page, limit, (page - 1) * limit
}

// parseChapterQuery reads an optional chapter query parameter.
// Returns 0 when absent; responds with 400 and false on a malformed value.
func parseChapterQuery(c *gin.Context) (int, bool) {
	chapterStr := c.Query("chapter")
	if chapterStr == "" {
		return 0, true
	}
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil || chapter < 1 {
		respondBadRequest(c, "invalid chapter")
		return 0, false
	}
	return chapter, true
}

// parseRangeQuery reads book/chapter/verseStart/verseCount query parameters
// into a verse range. verseCount defaults to 1. Responds with 400 and
// returns false when the range is missing or invalid.
func parseRangeQuery(c *gin.Context) (verses.Range, bool) {
	r := verses.Range{
		BookID:     c.Query("book"),
		VerseCount: 1,
	}

	chapter, err := strconv.Atoi(c.Query("chapter"))
	if err != nil {
		respondBadRequest(c, "chapter is required")
		return verses.Range{}, false
	}
	r.Chapter = chapter

	verseStart, err := strconv.Atoi(c.Query("verseStart"))
	if err != nil {
		respondBadRequest(c, "verseStart is required")
		return verses.Range{}, false
	}
	r.VerseStart = verseStart

	if countStr := c.Query("verseCount"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			respondBadRequest(c, "invalid verseCount")
			return verses.Range{}, false
		}
		r.VerseCount = count
	}

	if err := r.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return verses.Range{}, false
	}

	return r, true
}
