package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/selahapp/selah/internal/database/audit"
	"github.com/selahapp/selah/internal/database/bookmarks"
	"github.com/selahapp/selah/internal/database/highlights"
	"github.com/selahapp/selah/internal/database/notes"
	"github.com/selahapp/selah/internal/database/plansstore"
	"github.com/selahapp/selah/internal/database/progress"
	"github.com/selahapp/selah/internal/database/topics"
	"github.com/selahapp/selah/internal/database/users"
	"github.com/selahapp/selah/internal/http"
	"github.com/selahapp/selah/internal/services"
	"github.com/selahapp/selah/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookmarksStore implementations
var _ http.BookmarksStore = (*bookmarks.Repository)(nil)

// NotesStore implementations
var _ http.NotesStore = (*notes.Repository)(nil)

// HighlightsStore implementations
var _ http.HighlightsStore = (*highlights.Repository)(nil)

// TopicsStore implementations
var _ http.TopicsStore = (*topics.Repository)(nil)

// ProgressStore implementations
var _ http.ProgressStore = (*progress.Repository)(nil)

// PlansStore implementations
var _ http.PlansStore = (*plansstore.Repository)(nil)

// UsersStore implementations
var _ http.UsersStore = (*users.Repository)(nil)

// =============================================================================
// Reading Service
// =============================================================================

// ProgressRecorder/StreakStore implementations backing the reading service
var _ services.ProgressRecorder = (*progress.Repository)(nil)
var _ services.StreakStore = (*users.Repository)(nil)

// =============================================================================
// Deletion and Audit
// =============================================================================

// CollectionDeleter implementations used by the data controller
var _ http.CollectionDeleter = (*bookmarks.Repository)(nil)
var _ http.CollectionDeleter = (*notes.Repository)(nil)
var _ http.CollectionDeleter = (*highlights.Repository)(nil)
var _ http.CollectionDeleter = (*topics.Repository)(nil)
var _ http.CollectionDeleter = (*progress.Repository)(nil)
var _ http.CollectionDeleter = (*plansstore.Repository)(nil)

// AuditRecorder implementations
var _ http.AuditRecorder = (*audit.Repository)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

// AuditEventCleaner implementations
var _ tasks.AuditEventCleaner = (*audit.Repository)(nil)
