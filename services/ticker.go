package services

import (
	"sync"
	"time"

	"kanban-project/microservices/board-service/models"
	"kanban-project/microservices/board-service/timetracker"
)

// ElapsedCache keeps the formatted elapsed time of every task on the boards
// currently open, refreshed from a single 1-second ticker. One scheduling
// point replaces per-card polling so all displayed timers stay in step.
type ElapsedCache struct {
	mu      sync.RWMutex
	boards  map[string]*models.Project
	elapsed map[string]map[string]string

	stop chan struct{}
	once sync.Once
}

func NewElapsedCache() *ElapsedCache {
	return &ElapsedCache{
		boards:  make(map[string]*models.Project),
		elapsed: make(map[string]map[string]string),
		stop:    make(chan struct{}),
	}
}

// Open registers (or refreshes) a board as visible and computes its elapsed
// strings immediately so the first read never misses.
func (c *ElapsedCache) Open(project *models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := project.ID.Hex()
	c.boards[id] = project
	c.elapsed[id] = computeElapsed(project, time.Now())
}

// Close drops a board from the refresh cycle.
func (c *ElapsedCache) Close(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.boards, projectID)
	delete(c.elapsed, projectID)
}

// Elapsed returns the cached formatted elapsed time for a task.
func (c *ElapsedCache) Elapsed(projectID, taskID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tasks, ok := c.elapsed[projectID]
	if !ok {
		return "", false
	}
	formatted, ok := tasks[taskID]
	return formatted, ok
}

// Start launches the refresh loop. Call Stop to end it.
func (c *ElapsedCache) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				c.refreshAll(now)
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop ends the refresh loop. Safe to call more than once.
func (c *ElapsedCache) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *ElapsedCache) refreshAll(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, project := range c.boards {
		c.elapsed[id] = computeElapsed(project, now)
	}
}

func computeElapsed(project *models.Project, now time.Time) map[string]string {
	result := make(map[string]string)
	for i := range project.Columns {
		for _, task := range project.Columns[i].Tasks {
			result[task.ID] = timetracker.ForTask(task, now)
		}
	}
	return result
}
