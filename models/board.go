package models

import (
	"fmt"
	"sort"
	"strings"
)

// FindColumn returns a pointer into p.Columns for the column with the given
// id, or nil if no such column exists.
func (p *Project) FindColumn(columnID string) *Column {
	for i := range p.Columns {
		if p.Columns[i].ID == columnID {
			return &p.Columns[i]
		}
	}
	return nil
}

// FindTask locates a task anywhere on the board and returns its owning column
// together with the task itself.
func (p *Project) FindTask(taskID string) (*Column, *Task) {
	for i := range p.Columns {
		for j := range p.Columns[i].Tasks {
			if p.Columns[i].Tasks[j].ID == taskID {
				return &p.Columns[i], &p.Columns[i].Tasks[j]
			}
		}
	}
	return nil, nil
}

// MoveTask transfers a task from the source column to the target column,
// appending it to the target's task list. The task itself is not changed.
// Source and target must differ, and the task must currently be a member of
// the source column's list; otherwise no mutation happens.
func (p *Project) MoveTask(taskID, sourceColumnID, targetColumnID string) error {
	if sourceColumnID == targetColumnID {
		return fmt.Errorf("source and target column are the same: %w", ErrInvalidArgument)
	}

	source := p.FindColumn(sourceColumnID)
	if source == nil {
		return fmt.Errorf("source column %s: %w", sourceColumnID, ErrNotFound)
	}
	target := p.FindColumn(targetColumnID)
	if target == nil {
		return fmt.Errorf("target column %s: %w", targetColumnID, ErrNotFound)
	}

	taskIndex := -1
	for i := range source.Tasks {
		if source.Tasks[i].ID == taskID {
			taskIndex = i
			break
		}
	}
	if taskIndex == -1 {
		return fmt.Errorf("task %s not in column %s: %w", taskID, sourceColumnID, ErrNotFound)
	}

	task := source.Tasks[taskIndex]
	source.Tasks = append(source.Tasks[:taskIndex], source.Tasks[taskIndex+1:]...)
	target.Tasks = append(target.Tasks, task)
	return nil
}

// ReorderColumns replaces the board's column order wholesale. The new order
// must be a permutation of the existing column ids: same ids, no additions,
// no removals, no duplicates. Order values are reassigned densely from 0.
func (p *Project) ReorderColumns(newOrder []string) error {
	if len(newOrder) != len(p.Columns) {
		return fmt.Errorf("expected %d column ids, got %d: %w", len(p.Columns), len(newOrder), ErrInvalidArgument)
	}

	byID := make(map[string]*Column, len(p.Columns))
	for i := range p.Columns {
		byID[p.Columns[i].ID] = &p.Columns[i]
	}

	seen := make(map[string]bool, len(newOrder))
	reordered := make([]Column, 0, len(newOrder))
	for i, id := range newOrder {
		col, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown column id %s: %w", id, ErrInvalidArgument)
		}
		if seen[id] {
			return fmt.Errorf("duplicate column id %s: %w", id, ErrInvalidArgument)
		}
		seen[id] = true
		c := *col
		c.Order = i
		reordered = append(reordered, c)
	}

	p.Columns = reordered
	return nil
}

// AddColumn appends a new empty column at the given order position. The title
// must be non-empty after trimming; duplicate titles are allowed. Columns at
// or after the position shift right and order values stay dense.
func (p *Project) AddColumn(id, title string, order int) (*Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("column title must not be empty: %w", ErrInvalidArgument)
	}
	if order < 0 {
		order = 0
	}
	if order > len(p.Columns) {
		order = len(p.Columns)
	}

	col := Column{ID: id, Title: title, Order: order, Tasks: []Task{}}
	p.Columns = append(p.Columns, Column{})
	copy(p.Columns[order+1:], p.Columns[order:])
	p.Columns[order] = col
	for i := range p.Columns {
		p.Columns[i].Order = i
	}
	return &p.Columns[order], nil
}

// SortColumns orders p.Columns by their Order field so every read sees a
// consistent ordering regardless of storage order.
func (p *Project) SortColumns() {
	sort.SliceStable(p.Columns, func(i, j int) bool {
		return p.Columns[i].Order < p.Columns[j].Order
	})
}

// ColumnOrder returns the current column ids in display order.
func (p *Project) ColumnOrder() []string {
	ids := make([]string, len(p.Columns))
	for i := range p.Columns {
		ids[i] = p.Columns[i].ID
	}
	return ids
}
