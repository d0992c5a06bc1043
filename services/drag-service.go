package services

import (
	"context"
	"fmt"
	"sync"

	"kanban-project/microservices/board-service/dragdrop"
	"kanban-project/microservices/board-service/models"
	"kanban-project/microservices/board-service/permissions"
)

// boardAPI is the slice of BoardService the drag sessions need.
type boardAPI interface {
	GetBoard(ctx context.Context, projectID string) (*models.Project, error)
	MoveTask(ctx context.Context, projectID, taskID, sourceColumnID, targetColumnID, userID string, role models.Role) (*models.Project, error)
	ReorderColumns(ctx context.Context, projectID string, newOrder []string, role models.Role) (*models.Project, error)
}

// DragService keeps one drag controller per user and board, checks permission
// when a gesture begins, and applies the intent emitted by a drop to the
// board. Hovering is recorded for the view layer but never mutates anything.
type DragService struct {
	boards boardAPI

	mu       sync.Mutex
	sessions map[string]*dragdrop.Controller
}

func NewDragService(boards boardAPI) *DragService {
	return &DragService{
		boards:   boards,
		sessions: make(map[string]*dragdrop.Controller),
	}
}

func (d *DragService) controller(projectID, userID string) *dragdrop.Controller {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := projectID + "|" + userID
	ctrl, ok := d.sessions[key]
	if !ok {
		ctrl = dragdrop.NewController()
		d.sessions[key] = ctrl
	}
	return ctrl
}

// Begin starts a drag gesture. Permission is derived once here, from the
// dragged item's ownership and the caller's role; the controller itself
// trusts this check, so an unpermitted item never enters a gesture.
func (d *DragService) Begin(ctx context.Context, projectID, userID string, role models.Role, itemID string, kind dragdrop.Kind, sourceColumnID string) error {
	project, err := d.boards.GetBoard(ctx, projectID)
	if err != nil {
		return err
	}

	switch kind {
	case dragdrop.KindTask:
		column := project.FindColumn(sourceColumnID)
		if column == nil {
			return fmt.Errorf("source column %s: %w", sourceColumnID, models.ErrNotFound)
		}
		var task *models.Task
		for i := range column.Tasks {
			if column.Tasks[i].ID == itemID {
				task = &column.Tasks[i]
				break
			}
		}
		if task == nil {
			return fmt.Errorf("task %s not in column %s: %w", itemID, sourceColumnID, models.ErrNotFound)
		}
		if !permissions.CanModifyTask(*task, userID, role) {
			return fmt.Errorf("user %s may not drag task %s: %w", userID, itemID, models.ErrPermissionDenied)
		}
	case dragdrop.KindColumn:
		if project.FindColumn(itemID) == nil {
			return fmt.Errorf("column %s: %w", itemID, models.ErrNotFound)
		}
		if !permissions.CanReorderColumns(role) {
			return fmt.Errorf("role %s may not drag columns: %w", role, models.ErrPermissionDenied)
		}
	default:
		return fmt.Errorf("unknown drag kind %q: %w", kind, models.ErrInvalidArgument)
	}

	return d.controller(projectID, userID).BeginDrag(itemID, kind, sourceColumnID)
}

// Hover records the current drop-target candidate for the session.
func (d *DragService) Hover(projectID, userID, targetID string) {
	d.controller(projectID, userID).UpdateHover(targetID)
}

// Drop completes the gesture over targetID and applies the resulting intent.
// A no-op drop (same container, or no gesture in progress) returns the board
// unchanged.
func (d *DragService) Drop(ctx context.Context, projectID, userID string, role models.Role, targetID string) (*models.Project, error) {
	project, err := d.boards.GetBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}

	intent := d.controller(projectID, userID).CompleteDrop(targetID, project.ColumnOrder())
	switch intent := intent.(type) {
	case dragdrop.MoveTaskIntent:
		return d.boards.MoveTask(ctx, projectID, intent.TaskID, intent.SourceColumnID, intent.TargetColumnID, userID, role)
	case dragdrop.ReorderColumnsIntent:
		return d.boards.ReorderColumns(ctx, projectID, intent.ColumnIDs, role)
	default:
		return project, nil
	}
}

// Cancel abandons the session's gesture, if any.
func (d *DragService) Cancel(projectID, userID string) {
	d.controller(projectID, userID).Cancel()
}

// State returns the session's current gesture snapshot for the view layer.
func (d *DragService) State(projectID, userID string) dragdrop.State {
	return d.controller(projectID, userID).Snapshot()
}
