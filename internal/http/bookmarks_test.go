package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/database"
	"github.com/selahapp/selah/internal/database/bookmarks"
	"github.com/selahapp/selah/internal/entities"
)

func setupBookmarksTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_bookmarks_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

// testUserMiddleware injects a fixed user ID, standing in for the auth
// middleware.
func testUserMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Next()
	}
}

func newBookmarksTestRouter(db *database.Database, userID uint) *gin.Engine {
	controller := NewBookmarksController(bookmarks.NewRepository(db.DB))
	router := gin.New()
	router.Use(testUserMiddleware(userID))
	router.GET("/api/bookmarks", controller.List)
	router.POST("/api/bookmarks", controller.Create)
	router.GET("/api/bookmarks/range", controller.FindInRange)
	router.GET("/api/bookmarks/:id", controller.Get)
	router.PUT("/api/bookmarks/:id", controller.Update)
	router.DELETE("/api/bookmarks/:id", controller.Delete)
	return router
}

func TestBookmarksController_Create(t *testing.T) {
	t.Run("creates bookmark", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"john","chapter":3,"verseStart":16,"verseCount":3}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created entities.Bookmark
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "john", created.BookID)
		assert.Equal(t, 3, created.VerseCount)
		assert.Equal(t, uint(1), created.UserID)
	})

	t.Run("defaults verseCount to one", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"psalms","chapter":23,"verseStart":1}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created entities.Bookmark
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, 1, created.VerseCount)
	})

	t.Run("rejects unknown book", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"opinions","chapter":1,"verseStart":1}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects chapter past the book's end", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"jude","chapter":2,"verseStart":1}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate range conflicts", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"john","chapter":3,"verseStart":16}`
		for i, wantStatus := range []int{http.StatusCreated, http.StatusConflict} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, wantStatus, w.Code, "request %d", i+1)
		}
	})

	t.Run("overlapping but distinct range is allowed", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		first := `{"bookId":"john","chapter":3,"verseStart":16,"verseCount":3}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/bookmarks", strings.NewReader(first))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		second := `{"bookId":"john","chapter":3,"verseStart":17,"verseCount":3}`
		w = httptest.NewRecorder()
		req, _ = http.NewRequest("POST", "/api/bookmarks", strings.NewReader(second))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestBookmarksController_List(t *testing.T) {
	t.Run("returns paginated bookmarks", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		for chapter := 1; chapter <= 3; chapter++ {
			require.NoError(t, repo.Create(&entities.Bookmark{
				UserID: 1, BookID: "genesis", Chapter: chapter, VerseStart: 1, VerseCount: 1,
			}))
		}

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookmarks?limit=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data    []entities.Bookmark `json:"data"`
			Total   int64               `json:"total"`
			HasNext bool                `json:"has_next"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, int64(3), response.Total)
		assert.True(t, response.HasNext)
	})

	t.Run("filters by book and chapter", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 1}))
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "exodus", Chapter: 1, VerseStart: 1, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookmarks?book=exodus&chapter=1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data  []entities.Bookmark `json:"data"`
			Total int64               `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "exodus", response.Data[0].BookID)
	})

	t.Run("does not leak other users' bookmarks", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 2, BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookmarks", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(0), response.Total)
	})
}

func TestBookmarksController_FindInRange(t *testing.T) {
	t.Run("returns overlapping bookmarks only", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 3}))
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 30, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookmarks/range?book=john&chapter=3&verseStart=17&verseCount=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Bookmarks []entities.Bookmark `json:"bookmarks"`
			Count     int                 `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, 16, response.Bookmarks[0].VerseStart)
	})

	t.Run("requires chapter and verseStart", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/bookmarks/range?book=john", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookmarksController_Update(t *testing.T) {
	t.Run("moves bookmark to a new range", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"romans","chapter":8,"verseStart":28,"verseCount":2}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookmarks/1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated entities.Bookmark
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "romans", updated.BookID)
		assert.Equal(t, 28, updated.VerseStart)
		assert.Equal(t, 2, updated.VerseCount)
	})

	t.Run("moving onto an existing range conflicts", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}))
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 17, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"john","chapter":3,"verseStart":16}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookmarks/2", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing bookmark returns 404", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		body := `{"bookId":"john","chapter":3,"verseStart":16}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/bookmarks/42", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookmarksController_Delete(t *testing.T) {
	t.Run("deletes own bookmark", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		bookmark := &entities.Bookmark{UserID: 1, BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}
		require.NoError(t, repo.Create(bookmark))

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/bookmarks/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing bookmark returns 404", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/bookmarks/42", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cannot delete another user's bookmark", func(t *testing.T) {
		db, cleanup := setupBookmarksTestDB(t)
		defer cleanup()

		repo := bookmarks.NewRepository(db.DB)
		require.NoError(t, repo.Create(&entities.Bookmark{UserID: 2, BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}))

		router := newBookmarksTestRouter(db, 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/bookmarks/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
