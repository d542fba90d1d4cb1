// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - BookmarksStore: Bookmark management (internal/http/bookmarks.go)
//   - NotesStore: Note management (internal/http/notes.go)
//   - HighlightsStore: Highlight management (internal/http/highlights.go)
//   - TopicsStore: Topic collections (internal/http/topics.go)
//   - ProgressStore: Per-book reading progress (internal/http/progress.go)
//   - PlansStore: Reading plans (internal/http/plans.go)
//   - UsersStore: User preferences (internal/http/users.go)
//
// ## Service Interfaces
//
//   - ProgressRecorder: Persisting chapter/verse reads (internal/services/reading_service.go)
//   - StreakStore: Loading and updating streak state (internal/services/reading_service.go)
//
// ## Deletion and Audit Interfaces
//
//   - CollectionDeleter: Bulk per-user deletion (internal/http/data.go)
//   - AuditRecorder: Recording audit events (internal/http/data.go)
//   - AuditEventCleaner: Pruning old audit events (internal/tasks/cleanup_audit.go)
//
// # Adding a New Entity Type
//
// To add a new user-owned entity (e.g., prayer requests):
//
//  1. Define the entity in internal/entities/
//
//     type PrayerRequest struct {
//         gorm.Model
//         UserID  uint   `gorm:"index;not null"`
//         Content string `gorm:"not null"`
//     }
//
//  2. Create sub-package: internal/database/prayers/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to its controller in internal/http/
//
//     type PrayersStore interface {
//         Create(req *entities.PrayerRequest) error
//         ...
//     }
//
//  4. Register routes in router.go and add the entity to AutoMigrate
//     in internal/database/database.go
//
//  5. Add a compile-time check:
//
//     var _ http.PrayersStore = (*prayers.Repository)(nil)
//
//  6. If the entity holds user data, implement CollectionDeleter and wire
//     it into the data controller so full-wipe covers it
//
// # Adding a New Background Task
//
// To add a new recurring maintenance task:
//
//  1. Define the task type and its queue in internal/tasks/
//
//     type RecalculateStatsTask struct{}
//
//     func (t RecalculateStatsTask) Config() backlite.QueueConfig
//
//  2. Register the queue with the task client in entrypoint.go
//
//  3. Add a cron entry in internal/scheduler/maintenance.go if the task
//     should run on a schedule
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
