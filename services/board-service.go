package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"kanban-project/microservices/board-service/logging"
	"kanban-project/microservices/board-service/models"
	"kanban-project/microservices/board-service/permissions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BoardService owns the board documents for all projects and applies
// validated, permission-gated mutations. MongoDB is the source of truth:
// every write is followed by a re-read and the stored document wins.
type BoardService struct {
	boardsCollection *mongo.Collection
	notifier         *Notifier

	mu  sync.Mutex
	seq map[string]uint64
}

func NewBoardService(boardsCollection *mongo.Collection, notifier *Notifier) *BoardService {
	return &BoardService{
		boardsCollection: boardsCollection,
		notifier:         notifier,
		seq:              make(map[string]uint64),
	}
}

// nextSeq hands out the mutation sequence number for a board. Responses that
// complete after a newer mutation has been issued are treated as late and
// skip their side effects.
func (s *BoardService) nextSeq(projectID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[projectID]++
	return s.seq[projectID]
}

func (s *BoardService) isLatest(projectID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[projectID] == seq
}

// CreateBoard creates a new board document with the default column layout.
func (s *BoardService) CreateBoard(ctx context.Context, name, description string, members []models.Member) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("board name must not be empty: %w", models.ErrInvalidArgument)
	}

	now := time.Now()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
		Columns: []models.Column{
			{ID: uuid.NewString(), Title: "À faire", Order: 0, Tasks: []models.Task{}},
			{ID: uuid.NewString(), Title: "En cours", Order: 1, Tasks: []models.Task{}},
			{ID: uuid.NewString(), Title: "Terminé", Order: 2, Tasks: []models.Task{}},
		},
		Members: members,
	}

	result, err := s.boardsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", models.ErrRemoteFailure)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)

	logging.Logger.Infof("Event ID: BOARD_CREATED, Description: Board %s created for project '%s'", project.ID.Hex(), name)
	return project, nil
}

// GetBoard loads a board and returns it with columns in display order.
func (s *BoardService) GetBoard(ctx context.Context, projectID string) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format: %w", models.ErrInvalidArgument)
	}

	var project models.Project
	err = s.boardsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("board %s: %w", projectID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching board: %w", models.ErrRemoteFailure)
	}

	project.SortColumns()
	return &project, nil
}

// applyMove validates the caller's permission and transfers the task on the
// in-memory board. The returned task is a copy taken before the transfer:
// the move shifts the source column's task slice in place, so a pointer into
// it would name a different task afterwards.
func applyMove(project *models.Project, taskID, sourceColumnID, targetColumnID, userID string, role models.Role) (models.Task, error) {
	_, task := project.FindTask(taskID)
	if task == nil {
		return models.Task{}, fmt.Errorf("task %s: %w", taskID, models.ErrNotFound)
	}
	if !permissions.CanModifyTask(*task, userID, role) {
		return models.Task{}, fmt.Errorf("user %s may not modify task %s: %w", userID, taskID, models.ErrPermissionDenied)
	}

	moved := *task
	if err := project.MoveTask(taskID, sourceColumnID, targetColumnID); err != nil {
		return models.Task{}, err
	}
	return moved, nil
}

// MoveTask transfers a task between two columns of a board. The caller's
// permission on that specific task is checked here so every entry point
// (REST or drag session) goes through the same gate.
func (s *BoardService) MoveTask(ctx context.Context, projectID, taskID, sourceColumnID, targetColumnID, userID string, role models.Role) (*models.Project, error) {
	project, err := s.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	moved, err := applyMove(project, taskID, sourceColumnID, targetColumnID, userID, role)
	if err != nil {
		return nil, err
	}

	updated, stale, err := s.saveColumns(ctx, project)
	if err != nil {
		return nil, err
	}
	if stale {
		return updated, nil
	}

	logging.Logger.Infof("Event ID: TASK_MOVED, Description: Task %s moved from column %s to column %s on board %s", taskID, sourceColumnID, targetColumnID, projectID)
	s.notifyAssignee(moved, fmt.Sprintf("La tâche '%s' a été déplacée", moved.Title))
	return updated, nil
}

// ReorderColumns replaces the board's column order. Manager only; the new
// order must be a permutation of the existing columns.
func (s *BoardService) ReorderColumns(ctx context.Context, projectID string, newOrder []string, role models.Role) (*models.Project, error) {
	if !permissions.CanReorderColumns(role) {
		return nil, fmt.Errorf("role %s may not reorder columns: %w", role, models.ErrPermissionDenied)
	}

	project, err := s.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.ReorderColumns(newOrder); err != nil {
		return nil, err
	}

	updated, stale, err := s.saveColumns(ctx, project)
	if err != nil {
		return nil, err
	}

	if !stale {
		logging.Logger.Infof("Event ID: COLUMNS_REORDERED, Description: Columns of board %s reordered", projectID)
	}
	return updated, nil
}

// AddColumn appends a new empty column at the given order position.
func (s *BoardService) AddColumn(ctx context.Context, projectID, title string, order int, role models.Role) (*models.Project, error) {
	if !permissions.CanAddColumn(role) {
		return nil, fmt.Errorf("role %s may not add columns: %w", role, models.ErrPermissionDenied)
	}

	project, err := s.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}
	column, err := project.AddColumn(uuid.NewString(), title, order)
	if err != nil {
		return nil, err
	}

	updated, stale, err := s.saveColumns(ctx, project)
	if err != nil {
		return nil, err
	}

	if !stale {
		logging.Logger.Infof("Event ID: COLUMN_ADDED, Description: Column '%s' added to board %s at position %d", column.Title, projectID, column.Order)
	}
	return updated, nil
}

// TaskInput carries the caller-supplied fields for a new task.
type TaskInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	AssigneeID    string              `json:"assigneeId"`
	EstimatedTime int                 `json:"estimatedTime"`
	DueDate       *time.Time          `json:"dueDate"`
	Tags          []string            `json:"tags"`
}

// CreateTask adds a new task to the given column.
func (s *BoardService) CreateTask(ctx context.Context, projectID, columnID string, input TaskInput, userID string, role models.Role) (*models.Task, error) {
	if !permissions.CanCreateTask(role) {
		return nil, fmt.Errorf("role %s may not create tasks: %w", role, models.ErrPermissionDenied)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty: %w", models.ErrInvalidArgument)
	}
	if input.EstimatedTime < 0 {
		return nil, fmt.Errorf("estimated time must not be negative: %w", models.ErrInvalidArgument)
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, fmt.Errorf("unknown priority %q: %w", input.Priority, models.ErrInvalidArgument)
	}

	project, err := s.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}
	column := project.FindColumn(columnID)
	if column == nil {
		return nil, fmt.Errorf("column %s: %w", columnID, models.ErrNotFound)
	}

	task := models.Task{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Status:        models.StatusPending,
		Priority:      input.Priority,
		AssigneeID:    input.AssigneeID,
		CreatorID:     userID,
		EstimatedTime: input.EstimatedTime,
		DueDate:       input.DueDate,
		Tags:          input.Tags,
	}
	column.Tasks = append(column.Tasks, task)

	_, stale, err := s.saveColumns(ctx, project)
	if err != nil {
		return nil, err
	}
	if stale {
		return &task, nil
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task '%s' created in column %s of board %s", task.Title, columnID, projectID)
	s.notifyAssignee(task, fmt.Sprintf("La tâche '%s' vous a été assignée", task.Title))
	return &task, nil
}

// StartTimer begins time tracking on a task. Rejected if the timer already
// runs; startedAt is set together with timerActive so the pair stays
// consistent.
func (s *BoardService) StartTimer(ctx context.Context, projectID, taskID, userID string, role models.Role) (*models.Task, error) {
	return s.updateTimer(ctx, projectID, taskID, userID, role, func(task *models.Task) error {
		if task.TimerActive {
			return fmt.Errorf("timer already running for task %s: %w", task.ID, models.ErrInvalidArgument)
		}
		task.TimerActive = true
		task.StartedAt = time.Now().UTC().Format(time.RFC3339)
		return nil
	})
}

// StopTimer halts time tracking and folds the elapsed interval into the
// task's actual time, rounded down to whole minutes. An unparseable start
// timestamp contributes nothing.
func (s *BoardService) StopTimer(ctx context.Context, projectID, taskID, userID string, role models.Role) (*models.Task, error) {
	return s.updateTimer(ctx, projectID, taskID, userID, role, func(task *models.Task) error {
		if !task.TimerActive {
			return fmt.Errorf("timer is not running for task %s: %w", task.ID, models.ErrInvalidArgument)
		}
		if started, err := time.Parse(time.RFC3339, task.StartedAt); err == nil {
			if elapsed := time.Since(started); elapsed > 0 {
				task.ActualTime += int(elapsed.Minutes())
			}
		}
		task.TimerActive = false
		task.StartedAt = ""
		return nil
	})
}

func (s *BoardService) updateTimer(ctx context.Context, projectID, taskID, userID string, role models.Role, apply func(*models.Task) error) (*models.Task, error) {
	project, err := s.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	_, task := project.FindTask(taskID)
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, models.ErrNotFound)
	}
	if !permissions.CanModifyTask(*task, userID, role) {
		return nil, fmt.Errorf("user %s may not modify task %s: %w", userID, taskID, models.ErrPermissionDenied)
	}
	if err := apply(task); err != nil {
		return nil, err
	}

	updated, _, err := s.saveColumns(ctx, project)
	if err != nil {
		return nil, err
	}
	_, saved := updated.FindTask(taskID)
	if saved == nil {
		return nil, fmt.Errorf("task %s disappeared after update: %w", taskID, models.ErrNotFound)
	}
	return saved, nil
}

// saveColumns persists the board's column tree and re-reads the stored
// document as the authoritative state. The stale result reports a write that
// completed after a newer mutation was issued for the same board; callers
// must skip their follow-up side effects (event log, notification) for it,
// keeping only the re-read state.
func (s *BoardService) saveColumns(ctx context.Context, project *models.Project) (updated *models.Project, stale bool, err error) {
	projectID := project.ID.Hex()
	seq := s.nextSeq(projectID)

	update := bson.M{"$set": bson.M{
		"columns":   project.Columns,
		"updatedAt": time.Now(),
	}}
	result, err := s.boardsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update board %s: %w", projectID, models.ErrRemoteFailure)
	}
	if result.MatchedCount == 0 {
		return nil, false, fmt.Errorf("board %s: %w", projectID, models.ErrNotFound)
	}

	if !s.isLatest(projectID, seq) {
		logging.Logger.Infof("Event ID: STALE_WRITE_IGNORED, Description: Late response for board %s (seq %d) superseded by a newer mutation", projectID, seq)
		stale = true
	}
	updated, err = s.GetBoard(ctx, projectID)
	return updated, stale, err
}

func (s *BoardService) notifyAssignee(task models.Task, message string) {
	if task.AssigneeID == "" {
		return
	}
	s.notifier.Notify(task.AssigneeID, message)
}
