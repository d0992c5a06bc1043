// Package timetracker computes the time spent on a task from its accumulated
// minutes plus the currently running timer interval, if any. Everything here
// is a pure function of its inputs and the supplied clock reading; callers
// re-invoke on a periodic tick to keep a live display current.
package timetracker

import (
	"fmt"
	"time"

	"kanban-project/microservices/board-service/models"
)

// ElapsedSeconds returns the total time spent on a task in seconds:
// actualMinutes*60 plus, while the timer runs, the interval since startedAt.
// An unparseable startedAt contributes zero, and a startedAt in the future
// (clock skew) is clamped to zero. Never negative, never an error.
func ElapsedSeconds(actualMinutes int, timerActive bool, startedAt string, now time.Time) int64 {
	if actualMinutes < 0 {
		actualMinutes = 0
	}
	total := int64(actualMinutes) * 60

	if timerActive && startedAt != "" {
		started, err := time.Parse(time.RFC3339, startedAt)
		if err == nil {
			delta := now.Sub(started)
			if delta > 0 {
				total += int64(delta.Seconds())
			}
		}
	}
	return total
}

// Format renders a second count as zero-padded HH:MM:SS with unbounded hours.
func Format(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// ForTask formats the elapsed time of a task at the given clock reading.
func ForTask(task models.Task, now time.Time) string {
	return Format(ElapsedSeconds(task.ActualTime, task.TimerActive, task.StartedAt, now))
}
