package http

import (
	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Apply CSRF protection if auth is enabled
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	// Apply session middleware if enabled
	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Register auth routes if auth service is available
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
		authController.RegisterRoutes(router)
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController()
	bookmarksController := NewBookmarksController(cfg.BookmarksStore)
	notesController := NewNotesController(cfg.NotesStore)
	highlightsController := NewHighlightsController(cfg.HighlightsStore)
	topicsController := NewTopicsController(cfg.TopicsStore)
	progressController := NewProgressController(cfg.ReadingService, cfg.ProgressStore)
	plansController := NewPlansController(cfg.PlansStore)
	usersController := NewUsersController(cfg.UsersStore)
	dataController := NewDataController(cfg.Deleters, cfg.AuditRecorder)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Book metadata endpoints
	router.GET("/api/books", booksController.List)
	router.GET("/api/books/:bookId", booksController.Get)

	// Bookmark endpoints
	router.GET("/api/bookmarks", bookmarksController.List)
	router.POST("/api/bookmarks", bookmarksController.Create)
	router.GET("/api/bookmarks/range", bookmarksController.FindInRange)
	router.GET("/api/bookmarks/:id", bookmarksController.Get)
	router.PUT("/api/bookmarks/:id", bookmarksController.Update)
	router.DELETE("/api/bookmarks/:id", bookmarksController.Delete)

	// Note endpoints
	router.GET("/api/notes", notesController.List)
	router.POST("/api/notes", notesController.Create)
	router.GET("/api/notes/range", notesController.FindInRange)
	router.GET("/api/notes/search", notesController.Search)
	router.GET("/api/notes/:id", notesController.Get)
	router.PUT("/api/notes/:id", notesController.Update)
	router.DELETE("/api/notes/:id", notesController.Delete)

	// Highlight endpoints
	router.GET("/api/highlights", highlightsController.List)
	router.POST("/api/highlights", highlightsController.Create)
	router.GET("/api/highlights/range", highlightsController.FindInRange)
	router.GET("/api/highlights/stats", highlightsController.ColorStats)
	router.GET("/api/highlights/:id", highlightsController.Get)
	router.PUT("/api/highlights/:id", highlightsController.Update)
	router.DELETE("/api/highlights/:id", highlightsController.Delete)

	// Topic endpoints
	router.GET("/api/topics", topicsController.List)
	router.POST("/api/topics", topicsController.Create)
	router.GET("/api/topics/verse", topicsController.FindByVerse)
	router.GET("/api/topics/stats", topicsController.Stats)
	router.GET("/api/topics/:id", topicsController.Get)
	router.PUT("/api/topics/:id", topicsController.Rename)
	router.DELETE("/api/topics/:id", topicsController.Delete)
	router.POST("/api/topics/:id/verses", topicsController.AddVerse)
	router.DELETE("/api/topics/:id/verses", topicsController.RemoveVerse)

	// Reading progress endpoints
	router.GET("/api/progress", progressController.Summary)
	router.POST("/api/progress/log-reading", progressController.LogReading)
	router.GET("/api/progress/:bookId", progressController.Book)

	// Reading plan endpoints
	router.GET("/api/plans", plansController.List)
	router.POST("/api/plans", plansController.Create)
	router.GET("/api/plans/:id", plansController.Get)
	router.DELETE("/api/plans/:id", plansController.Delete)
	router.POST("/api/plans/:id/complete", plansController.CompleteDay)

	// User preference endpoints
	router.GET("/api/users/preferences", usersController.GetPreferences)
	router.PUT("/api/users/preferences", usersController.UpdatePreferences)

	// Bulk data deletion
	router.DELETE("/api/data/all", dataController.DeleteAll)
	router.DELETE("/api/data/:type", dataController.DeleteCollection)

	return router
}
