package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selahapp/selah/internal/tasks"
)

func newTestTaskClient(t *testing.T) *tasks.Client {
	t.Helper()

	cfg := tasks.DefaultConfig()
	cfg.Workers = 1

	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "tasks.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestMaintenanceScheduler_StartStop(t *testing.T) {
	client := newTestTaskClient(t)

	s := NewMaintenanceScheduler(client, "0 3 * * *", 30, "0 * * * *")

	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, s.IsRunning())

	// Both cleanup entries should be registered with upcoming fire times.
	next := s.NextRuns()
	require.Len(t, next, 2)
	for _, n := range next {
		assert.True(t, n.After(time.Now()))
	}

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRuns())
}

func TestMaintenanceScheduler_StartIsIdempotent(t *testing.T) {
	client := newTestTaskClient(t)

	s := NewMaintenanceScheduler(client, "0 3 * * *", 30, "0 * * * *")
	defer s.Stop()

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	client := newTestTaskClient(t)

	s := NewMaintenanceScheduler(client, "not a schedule", 30, "0 * * * *")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit cleanup schedule")
	assert.False(t, s.IsRunning())
}

func TestMaintenanceScheduler_NilTaskClient(t *testing.T) {
	s := NewMaintenanceScheduler(nil, "0 3 * * *", 30, "0 * * * *")

	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsRunning())
}

func TestMaintenanceScheduler_EmptySchedulesSkipped(t *testing.T) {
	client := newTestTaskClient(t)

	s := NewMaintenanceScheduler(client, "", 30, "")
	defer s.Stop()

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Empty(t, s.NextRuns())
}

func TestMaintenanceScheduler_StopsOnContextCancel(t *testing.T) {
	client := newTestTaskClient(t)

	s := NewMaintenanceScheduler(client, "0 3 * * *", 30, "0 * * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.True(t, s.IsRunning())

	cancel()

	assert.Eventually(t, func() bool {
		return !s.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
}
