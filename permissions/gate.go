// Package permissions centralizes every role-based authorization decision for
// board mutations. All predicates are pure: no I/O, no errors, queried before
// any mutation is attempted.
package permissions

import "kanban-project/microservices/board-service/models"

// CanModifyTask reports whether the user may mutate the given task (move it,
// start or stop its timer, edit its fields). Managers may modify any task in
// the project. Members may modify only tasks they created or are assigned to.
// Observers may modify nothing.
func CanModifyTask(task models.Task, userID string, role models.Role) bool {
	switch role {
	case models.RoleManager:
		return true
	case models.RoleMember:
		return task.CreatorID == userID || (task.AssigneeID != "" && task.AssigneeID == userID)
	default:
		return false
	}
}

// CanReorderColumns reports whether the role may rearrange the board's
// columns. Manager only.
func CanReorderColumns(role models.Role) bool {
	return role == models.RoleManager
}

// CanAddColumn reports whether the role may add columns to the board.
// Manager only, like every change to the column structure.
func CanAddColumn(role models.Role) bool {
	return role == models.RoleManager
}

// CanCreateTask reports whether the role may create tasks on the board.
func CanCreateTask(role models.Role) bool {
	return role == models.RoleManager || role == models.RoleMember
}

// CanShareTask reports whether the role may share a task outside the board.
func CanShareTask(role models.Role) bool {
	return role == models.RoleManager
}
