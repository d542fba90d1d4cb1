// Package scheduler enqueues recurring maintenance tasks on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/selahapp/selah/internal/tasks"
)

// MaintenanceScheduler periodically enqueues the audit and session
// cleanup tasks. The task queue owns execution and retries; the scheduler
// only decides when work is due.
type MaintenanceScheduler struct {
	taskClient *tasks.Client

	auditSchedule      string
	auditRetentionDays int
	sessionsSchedule   string

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a scheduler for the recurring cleanup
// tasks. Schedules use the standard 5-field cron format.
func NewMaintenanceScheduler(taskClient *tasks.Client, auditSchedule string, auditRetentionDays int, sessionsSchedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		taskClient:         taskClient,
		auditSchedule:      auditSchedule,
		auditRetentionDays: auditRetentionDays,
		sessionsSchedule:   sessionsSchedule,
		cron:               cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the cron entries and begins scheduling.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.taskClient == nil {
		log.Printf("Maintenance scheduler: task queue disabled, skipping")
		return nil
	}

	if s.auditSchedule != "" {
		if _, err := s.cron.AddFunc(s.auditSchedule, s.enqueueAuditCleanup); err != nil {
			return fmt.Errorf("invalid audit cleanup schedule '%s': %w", s.auditSchedule, err)
		}
	}
	if s.sessionsSchedule != "" {
		if _, err := s.cron.AddFunc(s.sessionsSchedule, s.enqueueSessionCleanup); err != nil {
			return fmt.Errorf("invalid session cleanup schedule '%s': %w", s.sessionsSchedule, err)
		}
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started (audit '%s', sessions '%s')",
		s.auditSchedule, s.sessionsSchedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRuns reports the upcoming fire times of all entries.
func (s *MaintenanceScheduler) NextRuns() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Next)
	}
	return next
}

func (s *MaintenanceScheduler) enqueueAuditCleanup() {
	_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.auditRetentionDays,
	}).Save()
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue audit cleanup: %v", err)
	}
}

func (s *MaintenanceScheduler) enqueueSessionCleanup() {
	if _, err := s.taskClient.Add(tasks.CleanupSessionsTask{}).Save(); err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue session cleanup: %v", err)
	}
}
