// Package entrypoint assembles the application: database, auth,
// task queue, scheduler and router, plus the serving loop with
// graceful shutdown.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/config"
	"github.com/selahapp/selah/internal/database"
	auditrepo "github.com/selahapp/selah/internal/database/audit"
	"github.com/selahapp/selah/internal/database/bookmarks"
	"github.com/selahapp/selah/internal/database/highlights"
	"github.com/selahapp/selah/internal/database/notes"
	"github.com/selahapp/selah/internal/database/plansstore"
	"github.com/selahapp/selah/internal/database/progress"
	"github.com/selahapp/selah/internal/database/topics"
	"github.com/selahapp/selah/internal/database/users"
	http_controllers "github.com/selahapp/selah/internal/http"
	"github.com/selahapp/selah/internal/scheduler"
	"github.com/selahapp/selah/internal/services"
	"github.com/selahapp/selah/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Selah v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Build the repositories
	usersRepo := users.NewRepository(db.DB)
	bookmarksRepo := bookmarks.NewRepository(db.DB)
	notesRepo := notes.NewRepository(db.DB)
	highlightsRepo := highlights.NewRepository(db.DB)
	topicsRepo := topics.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	plansRepo := plansstore.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)

	readingService := services.NewReadingService(progressRepo, usersRepo, nil)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.TasksPath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for cleanup tasks: %v", err)
		}

		// Register task queues
		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditRepo),
			tasks.NewCleanupSessionsQueue(sqlDB),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Schedule the recurring cleanups
		maintenance = scheduler.NewMaintenanceScheduler(
			taskClient,
			cfg.Audit.Schedule,
			cfg.Audit.RetentionDays,
			cfg.Sessions.CleanupSchedule,
		)
		if err := maintenance.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	// Initialize authentication if enabled
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		// Create auth service
		authService = auth.NewService(db.DB, cfg.Auth)

		// Get underlying SQL DB for session store
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		// Initialize session manager
		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		// Create auth middleware
		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			// Generate a secret
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		// Check if setup is needed
		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. POST /api/auth/register or run 'create-user' to create an account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")

		// Single-user mode needs a user row for streaks and preferences.
		if _, err := usersRepo.EnsureDefault(auth.DefaultUserID); err != nil {
			log.Fatalf("Failed to ensure default user: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Version:         version,
		BookmarksStore:  bookmarksRepo,
		NotesStore:      notesRepo,
		HighlightsStore: highlightsRepo,
		TopicsStore:     topicsRepo,
		ProgressStore:   progressRepo,
		PlansStore:      plansRepo,
		UsersStore:      usersRepo,
		ReadingService:  readingService,
		Deleters: http_controllers.DataDeleters{
			Bookmarks:  bookmarksRepo,
			Notes:      notesRepo,
			Highlights: highlightsRepo,
			Topics:     topicsRepo,
			Progress:   progressRepo,
			Plans:      plansRepo,
		},
		AuditRecorder:  auditRepo,
		AuthConfig:     cfg.Auth,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
