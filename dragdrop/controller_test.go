package dragdrop

import (
	"testing"

	"kanban-project/microservices/board-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDropEmitsMoveIntent(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("t1", KindTask, "colA"))
	c.UpdateHover("colB")

	intent := c.CompleteDrop("colB", nil)
	require.IsType(t, MoveTaskIntent{}, intent)

	move := intent.(MoveTaskIntent)
	assert.Equal(t, "t1", move.TaskID)
	assert.Equal(t, "colA", move.SourceColumnID)
	assert.Equal(t, "colB", move.TargetColumnID)

	assert.False(t, c.Snapshot().Active, "state must be cleared after drop")
}

func TestSameContainerDropIsNoOp(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("t1", KindTask, "colA"))

	intent := c.CompleteDrop("colA", nil)
	assert.Nil(t, intent)
	assert.False(t, c.Snapshot().Active)
}

func TestDropWithoutGestureIsNoOp(t *testing.T) {
	c := NewController()
	assert.Nil(t, c.CompleteDrop("colB", nil))
}

func TestColumnDropReordersForward(t *testing.T) {
	order := []string{"a", "x", "b", "y", "c"}

	c := NewController()
	require.NoError(t, c.BeginDrag("x", KindColumn, ""))

	intent := c.CompleteDrop("y", order)
	require.IsType(t, ReorderColumnsIntent{}, intent)

	got := intent.(ReorderColumnsIntent).ColumnIDs
	// x takes y's former index, everything between shifts by one.
	assert.Equal(t, []string{"a", "b", "y", "x", "c"}, got)
	assert.ElementsMatch(t, order, got)
}

func TestColumnDropReordersBackward(t *testing.T) {
	order := []string{"a", "y", "x", "b"}

	c := NewController()
	require.NoError(t, c.BeginDrag("x", KindColumn, ""))

	intent := c.CompleteDrop("y", order)
	require.IsType(t, ReorderColumnsIntent{}, intent)

	got := intent.(ReorderColumnsIntent).ColumnIDs
	assert.Equal(t, []string{"a", "x", "y", "b"}, got)
	assert.ElementsMatch(t, order, got)
}

func TestColumnDropOnItselfIsNoOp(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("x", KindColumn, ""))

	assert.Nil(t, c.CompleteDrop("x", []string{"a", "x", "b"}))
	assert.False(t, c.Snapshot().Active)
}

func TestColumnDropUnknownTargetIsNoOp(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("x", KindColumn, ""))

	assert.Nil(t, c.CompleteDrop("missing", []string{"a", "x", "b"}))
}

func TestCancelClearsState(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("t1", KindTask, "colA"))
	c.UpdateHover("colB")

	c.Cancel()
	assert.Equal(t, State{}, c.Snapshot())

	// An abandoned gesture emits nothing on a later drop.
	assert.Nil(t, c.CompleteDrop("colB", nil))
}

func TestHoverIsVisualOnly(t *testing.T) {
	c := NewController()
	require.NoError(t, c.BeginDrag("t1", KindTask, "colA"))

	c.UpdateHover("colB")
	c.UpdateHover("colC")

	state := c.Snapshot()
	assert.Equal(t, "colC", state.Hover)
	assert.Equal(t, "t1", state.DraggedItemID)
	assert.Equal(t, "colA", state.SourceContainerID)
}

func TestHoverWithoutGestureIsIgnored(t *testing.T) {
	c := NewController()
	c.UpdateHover("colB")
	assert.Equal(t, State{}, c.Snapshot())
}

func TestBeginDragValidation(t *testing.T) {
	c := NewController()

	assert.ErrorIs(t, c.BeginDrag("", KindTask, "colA"), models.ErrInvalidArgument)
	assert.ErrorIs(t, c.BeginDrag("t1", Kind("widget"), "colA"), models.ErrInvalidArgument)
	assert.ErrorIs(t, c.BeginDrag("t1", KindTask, ""), models.ErrInvalidArgument)

	require.NoError(t, c.BeginDrag("t1", KindTask, "colA"))
	assert.ErrorIs(t, c.BeginDrag("t2", KindTask, "colA"), models.ErrInvalidArgument)
}
