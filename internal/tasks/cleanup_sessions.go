package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CleanupSessionsTask prunes expired rows from the sessions table. The
// session store only deletes rows lazily on read, so long-gone sessions
// accumulate without this.
type CleanupSessionsTask struct{}

// Config returns the queue configuration for session cleanup tasks.
func (t CleanupSessionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_sessions",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupSessionsProcessor creates a processor function for CleanupSessionsTask.
// db is the main application database holding the sessions table.
func CleanupSessionsProcessor(db *sql.DB) backlite.QueueProcessor[CleanupSessionsTask] {
	return func(ctx context.Context, task CleanupSessionsTask) error {
		if db == nil {
			return fmt.Errorf("sessions database not configured")
		}

		// The expiry column stores a julian day number, matching the
		// session store's schema.
		result, err := db.ExecContext(ctx,
			"DELETE FROM sessions WHERE expiry < julianday('now')")
		if err != nil {
			return fmt.Errorf("cleanup sessions: %w", err)
		}

		deleted, _ := result.RowsAffected()
		log.Printf("[TASK] Cleaned up %d expired sessions", deleted)
		return nil
	}
}

// NewCleanupSessionsQueue creates a backlite queue for session cleanup tasks.
func NewCleanupSessionsQueue(db *sql.DB) backlite.Queue {
	return backlite.NewQueue(CleanupSessionsProcessor(db))
}
