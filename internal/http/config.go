// Package http wires the REST API: controllers, per-entity store
// interfaces and the router.
package http

import (
	"github.com/selahapp/selah/internal/auth"
	"github.com/selahapp/selah/internal/config"
	"github.com/selahapp/selah/internal/database"
	"github.com/selahapp/selah/internal/services"
)

// RouterConfig collects every dependency the router needs. Using a
// config struct keeps NewRouter's signature stable as controllers are
// added.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Version  string

	// Entity stores
	BookmarksStore  BookmarksStore
	NotesStore      NotesStore
	HighlightsStore HighlightsStore
	TopicsStore     TopicsStore
	ProgressStore   ProgressStore
	PlansStore      PlansStore
	UsersStore      UsersStore

	// Reading progress coordination
	ReadingService *services.ReadingService

	// Bulk deletion
	Deleters      DataDeleters
	AuditRecorder AuditRecorder

	// Authentication
	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
}
