package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() *Project {
	return &Project{
		Name: "Test board",
		Columns: []Column{
			{ID: "colA", Title: "À faire", Order: 0, Tasks: []Task{
				{ID: "t1", Title: "First", Priority: PriorityHigh, CreatorID: "u1", ActualTime: 30},
				{ID: "t2", Title: "Second", Priority: PriorityLow, CreatorID: "u2"},
			}},
			{ID: "colB", Title: "En cours", Order: 1, Tasks: []Task{
				{ID: "t3", Title: "Third", Priority: PriorityUrgent, CreatorID: "u1"},
			}},
			{ID: "colC", Title: "Terminé", Order: 2, Tasks: []Task{}},
		},
	}
}

func TestMoveTask(t *testing.T) {
	board := testBoard()

	require.NoError(t, board.MoveTask("t1", "colA", "colB"))

	colA := board.FindColumn("colA")
	colB := board.FindColumn("colB")
	require.Len(t, colA.Tasks, 1)
	assert.Equal(t, "t2", colA.Tasks[0].ID)

	require.Len(t, colB.Tasks, 2)
	moved := colB.Tasks[1]
	assert.Equal(t, "t1", moved.ID)
	assert.Equal(t, "First", moved.Title)
	assert.Equal(t, PriorityHigh, moved.Priority)
	assert.Equal(t, "u1", moved.CreatorID)
	assert.Equal(t, 30, moved.ActualTime)
}

func TestMoveTaskSameColumnRejected(t *testing.T) {
	board := testBoard()

	err := board.MoveTask("t1", "colA", "colA")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	require.Len(t, board.FindColumn("colA").Tasks, 2)
}

func TestMoveTaskNotInSourceColumn(t *testing.T) {
	board := testBoard()

	err := board.MoveTask("t3", "colA", "colB")
	assert.ErrorIs(t, err, ErrNotFound)

	// No partial mutation.
	assert.Len(t, board.FindColumn("colA").Tasks, 2)
	assert.Len(t, board.FindColumn("colB").Tasks, 1)
}

func TestMoveTaskUnknownColumns(t *testing.T) {
	board := testBoard()

	assert.ErrorIs(t, board.MoveTask("t1", "missing", "colB"), ErrNotFound)
	assert.ErrorIs(t, board.MoveTask("t1", "colA", "missing"), ErrNotFound)
}

func TestReorderColumnsIdentity(t *testing.T) {
	board := testBoard()

	require.NoError(t, board.ReorderColumns([]string{"colA", "colB", "colC"}))
	assert.Equal(t, []string{"colA", "colB", "colC"}, board.ColumnOrder())
	for i, col := range board.Columns {
		assert.Equal(t, i, col.Order)
	}
}

func TestReorderColumnsPermutation(t *testing.T) {
	board := testBoard()

	require.NoError(t, board.ReorderColumns([]string{"colC", "colA", "colB"}))
	assert.Equal(t, []string{"colC", "colA", "colB"}, board.ColumnOrder())

	// Tasks travel with their columns.
	assert.Len(t, board.Columns[1].Tasks, 2)
	assert.Equal(t, "Terminé", board.Columns[0].Title)
}

func TestReorderColumnsInvalidPermutations(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"too short", []string{"colA", "colB"}},
		{"too long", []string{"colA", "colB", "colC", "colD"}},
		{"unknown id", []string{"colA", "colB", "colX"}},
		{"duplicate id", []string{"colA", "colA", "colB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testBoard()
			err := board.ReorderColumns(tt.order)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []string{"colA", "colB", "colC"}, board.ColumnOrder())
		})
	}
}

func TestAddColumn(t *testing.T) {
	board := testBoard()

	col, err := board.AddColumn("colD", "Révision", 1)
	require.NoError(t, err)
	assert.Equal(t, "Révision", col.Title)
	assert.Empty(t, col.Tasks)

	assert.Equal(t, []string{"colA", "colD", "colB", "colC"}, board.ColumnOrder())
	for i, c := range board.Columns {
		assert.Equal(t, i, c.Order)
	}
}

func TestAddColumnAtEnd(t *testing.T) {
	board := testBoard()

	_, err := board.AddColumn("colD", "Archive", 99)
	require.NoError(t, err)
	assert.Equal(t, "colD", board.Columns[len(board.Columns)-1].ID)
}

func TestAddColumnEmptyTitleRejected(t *testing.T) {
	board := testBoard()

	_, err := board.AddColumn("colD", "", 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = board.AddColumn("colD", "   ", 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Len(t, board.Columns, 3)
}

func TestAddColumnDuplicateTitleAllowed(t *testing.T) {
	board := testBoard()

	_, err := board.AddColumn("colD", "En cours", 3)
	assert.NoError(t, err)
}

func TestSortColumns(t *testing.T) {
	board := &Project{Columns: []Column{
		{ID: "b", Order: 2},
		{ID: "a", Order: 0},
		{ID: "c", Order: 1},
	}}

	board.SortColumns()
	assert.Equal(t, []string{"a", "c", "b"}, board.ColumnOrder())
}

func TestFindTask(t *testing.T) {
	board := testBoard()

	col, task := board.FindTask("t3")
	require.NotNil(t, task)
	assert.Equal(t, "colB", col.ID)
	assert.Equal(t, "Third", task.Title)

	col, task = board.FindTask("missing")
	assert.Nil(t, col)
	assert.Nil(t, task)
}
