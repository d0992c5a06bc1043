package timetracker

import (
	"testing"
	"time"

	"kanban-project/microservices/board-service/models"

	"github.com/stretchr/testify/assert"
)

func TestElapsedWithoutRunningTimer(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	task := models.Task{ActualTime: 65, TimerActive: false}
	assert.Equal(t, "01:05:00", ForTask(task, now))
}

func TestElapsedWithRunningTimer(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-90 * time.Second)

	task := models.Task{
		ActualTime:  0,
		TimerActive: true,
		StartedAt:   started.Format(time.RFC3339),
	}
	assert.Equal(t, "00:01:30", ForTask(task, now))
}

func TestElapsedCombinesAccumulatedAndRunning(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-30 * time.Second)

	seconds := ElapsedSeconds(2, true, started.Format(time.RFC3339), now)
	assert.Equal(t, int64(150), seconds)
}

func TestElapsedIgnoresStartedAtWhenTimerInactive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-time.Hour)

	seconds := ElapsedSeconds(1, false, started.Format(time.RFC3339), now)
	assert.Equal(t, int64(60), seconds)
}

func TestElapsedUnparseableStartedAt(t *testing.T) {
	now := time.Now()

	assert.Equal(t, int64(120), ElapsedSeconds(2, true, "not-a-timestamp", now))
	assert.Equal(t, int64(120), ElapsedSeconds(2, true, "", now))
}

func TestElapsedClampsClockSkew(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(5 * time.Minute)

	seconds := ElapsedSeconds(3, true, future.Format(time.RFC3339), now)
	assert.Equal(t, int64(180), seconds)
}

func TestElapsedClampsNegativeMinutes(t *testing.T) {
	assert.Equal(t, int64(0), ElapsedSeconds(-10, false, "", time.Now()))
}

func TestElapsedIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	task := models.Task{
		ActualTime:  5,
		TimerActive: true,
		StartedAt:   now.Add(-42 * time.Second).Format(time.RFC3339),
	}

	first := ForTask(task, now)
	second := ForTask(task, now)
	assert.Equal(t, first, second)
}

func TestElapsedMonotonic(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	task := models.Task{
		ActualTime:  1,
		TimerActive: true,
		StartedAt:   start.Format(time.RFC3339),
	}

	var previous int64 = -1
	for i := 0; i < 10; i++ {
		now := start.Add(time.Duration(i*7) * time.Second)
		seconds := ElapsedSeconds(task.ActualTime, task.TimerActive, task.StartedAt, now)
		assert.GreaterOrEqual(t, seconds, previous)
		previous = seconds
	}
}

func TestFormatUnboundedHours(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.seconds))
	}
}
