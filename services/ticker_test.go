package services

import (
	"testing"
	"time"

	"kanban-project/microservices/board-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheFixture() (*ElapsedCache, *models.Project, string) {
	started := time.Now().UTC().Truncate(time.Second).Add(-90 * time.Second)
	project := &models.Project{
		Columns: []models.Column{
			{ID: "colA", Tasks: []models.Task{
				{ID: "t1", ActualTime: 65},
				{ID: "t2", ActualTime: 0, TimerActive: true, StartedAt: started.Format(time.RFC3339)},
			}},
		},
	}
	cache := NewElapsedCache()
	cache.Open(project)
	return cache, project, project.ID.Hex()
}

func TestCacheComputesOnOpen(t *testing.T) {
	cache, _, projectID := cacheFixture()

	elapsed, ok := cache.Elapsed(projectID, "t1")
	require.True(t, ok)
	assert.Equal(t, "01:05:00", elapsed)

	elapsed, ok = cache.Elapsed(projectID, "t2")
	require.True(t, ok)
	assert.Equal(t, "00:01:30", elapsed)
}

func TestCacheRefreshAdvancesRunningTimers(t *testing.T) {
	cache, _, projectID := cacheFixture()

	cache.refreshAll(time.Now().Add(30 * time.Second))

	elapsed, ok := cache.Elapsed(projectID, "t2")
	require.True(t, ok)
	assert.Equal(t, "00:02:00", elapsed)

	// Inactive timers do not advance.
	elapsed, _ = cache.Elapsed(projectID, "t1")
	assert.Equal(t, "01:05:00", elapsed)
}

func TestCacheCloseDropsBoard(t *testing.T) {
	cache, _, projectID := cacheFixture()

	cache.Close(projectID)
	_, ok := cache.Elapsed(projectID, "t1")
	assert.False(t, ok)
}

func TestCacheUnknownBoard(t *testing.T) {
	cache := NewElapsedCache()
	_, ok := cache.Elapsed("missing", "t1")
	assert.False(t, ok)
}
