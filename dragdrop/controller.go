// Package dragdrop tracks the ephemeral state of one in-progress drag gesture
// and translates drop events into typed move intents. The controller never
// touches the board itself; permission for the dragged item must be checked
// by the caller before BeginDrag, and intents are applied elsewhere.
package dragdrop

import (
	"fmt"

	"kanban-project/microservices/board-service/models"
)

type Kind string

const (
	KindTask   Kind = "task"
	KindColumn Kind = "column"
)

// Intent is the outcome of a completed drop. Exactly one of the concrete
// intent types is emitted per drop; a same-container or abandoned drop emits
// none.
type Intent interface {
	intent()
}

// MoveTaskIntent asks for a task to be transferred between two columns.
type MoveTaskIntent struct {
	TaskID         string
	SourceColumnID string
	TargetColumnID string
}

func (MoveTaskIntent) intent() {}

// ReorderColumnsIntent carries the full new column order: the dragged column
// removed from its old position and inserted at the drop target's former
// position. Always a permutation of the input order.
type ReorderColumnsIntent struct {
	ColumnIDs []string
}

func (ReorderColumnsIntent) intent() {}

// State is a read-only snapshot of the gesture for the view layer.
type State struct {
	Active            bool   `json:"active"`
	DraggedItemID     string `json:"draggedItemId,omitempty"`
	DraggedItemKind   Kind   `json:"draggedItemKind,omitempty"`
	SourceContainerID string `json:"sourceContainerId,omitempty"`
	Hover             string `json:"hover,omitempty"`
}

// Controller holds at most one gesture at a time. It is not safe for
// concurrent use; each user session owns its own controller.
type Controller struct {
	state State
}

func NewController() *Controller {
	return &Controller{}
}

// BeginDrag starts a gesture for the given item. The caller is responsible
// for having verified permission to move the item; the controller trusts
// that check and does not re-derive it.
func (c *Controller) BeginDrag(itemID string, kind Kind, sourceContainerID string) error {
	if c.state.Active {
		return fmt.Errorf("drag already in progress for %s: %w", c.state.DraggedItemID, models.ErrInvalidArgument)
	}
	if itemID == "" {
		return fmt.Errorf("dragged item id must not be empty: %w", models.ErrInvalidArgument)
	}
	if kind != KindTask && kind != KindColumn {
		return fmt.Errorf("unknown drag kind %q: %w", kind, models.ErrInvalidArgument)
	}
	if kind == KindTask && sourceContainerID == "" {
		return fmt.Errorf("task drag requires a source column: %w", models.ErrInvalidArgument)
	}

	c.state = State{
		Active:            true,
		DraggedItemID:     itemID,
		DraggedItemKind:   kind,
		SourceContainerID: sourceContainerID,
	}
	return nil
}

// UpdateHover records the current drop-target candidate. Purely visual
// feedback; it never produces an intent and never mutates the board.
func (c *Controller) UpdateHover(containerID string) {
	if !c.state.Active {
		return
	}
	c.state.Hover = containerID
}

// CompleteDrop ends the gesture over targetContainerID and returns the
// resulting intent, or nil when the drop is a no-op (same container, or no
// gesture in progress). columnOrder is the board's current column order and
// is consulted only for column drags. State is cleared in every case.
func (c *Controller) CompleteDrop(targetContainerID string, columnOrder []string) Intent {
	if !c.state.Active {
		return nil
	}
	state := c.state
	c.state = State{}

	switch state.DraggedItemKind {
	case KindTask:
		if targetContainerID == "" || targetContainerID == state.SourceContainerID {
			return nil
		}
		return MoveTaskIntent{
			TaskID:         state.DraggedItemID,
			SourceColumnID: state.SourceContainerID,
			TargetColumnID: targetContainerID,
		}
	case KindColumn:
		if targetContainerID == "" || targetContainerID == state.DraggedItemID {
			return nil
		}
		reordered := reorder(columnOrder, state.DraggedItemID, targetContainerID)
		if reordered == nil {
			return nil
		}
		return ReorderColumnsIntent{ColumnIDs: reordered}
	}
	return nil
}

// Cancel abandons the gesture, treated identically to a same-container drop.
func (c *Controller) Cancel() {
	c.state = State{}
}

// Snapshot returns the current gesture state.
func (c *Controller) Snapshot() State {
	return c.state
}

// reorder removes draggedID from order and re-inserts it at targetID's
// original index, so the dragged column takes the target's former position
// and everything between shifts by one. Returns nil if either id is absent.
func reorder(order []string, draggedID, targetID string) []string {
	targetIndex := -1
	draggedIndex := -1
	for i, id := range order {
		switch id {
		case targetID:
			targetIndex = i
		case draggedID:
			draggedIndex = i
		}
	}
	if targetIndex == -1 || draggedIndex == -1 {
		return nil
	}

	result := make([]string, 0, len(order))
	for _, id := range order {
		if id != draggedID {
			result = append(result, id)
		}
	}
	if targetIndex > len(result) {
		targetIndex = len(result)
	}
	result = append(result, "")
	copy(result[targetIndex+1:], result[targetIndex:])
	result[targetIndex] = draggedID
	return result
}
