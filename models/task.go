package models

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "basse"
	PriorityMedium TaskPriority = "moyenne"
	PriorityHigh   TaskPriority = "haute"
	PriorityUrgent TaskPriority = "urgente"
)

// IsValid reports whether p is one of the four known priority levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Attachment struct {
	ID         string    `json:"id" bson:"id"`
	FileName   string    `json:"fileName" bson:"fileName"`
	FileURL    string    `json:"fileUrl" bson:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

type Comment struct {
	ID        string    `json:"id" bson:"id"`
	AuthorID  string    `json:"authorId" bson:"authorId"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Task lives inside exactly one Column of a board document. StartedAt is an
// RFC3339 timestamp and is set if and only if TimerActive is true.
type Task struct {
	ID            string       `json:"id" bson:"id"`
	Title         string       `json:"title" bson:"title"`
	Description   string       `json:"description" bson:"description"`
	Status        TaskStatus   `json:"status" bson:"status"`
	Priority      TaskPriority `json:"priority" bson:"priority"`
	AssigneeID    string       `json:"assigneeId,omitempty" bson:"assigneeId,omitempty"`
	CreatorID     string       `json:"creatorId" bson:"creatorId"`
	EstimatedTime int          `json:"estimatedTime" bson:"estimatedTime"`
	ActualTime    int          `json:"actualTime" bson:"actualTime"`
	TimerActive   bool         `json:"timerActive" bson:"timerActive"`
	StartedAt     string       `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	DueDate       *time.Time   `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Tags          []string     `json:"tags,omitempty" bson:"tags,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Comments      []Comment    `json:"comments,omitempty" bson:"comments,omitempty"`
}
