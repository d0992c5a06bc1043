package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Column struct {
	ID    string `json:"id" bson:"id"`
	Title string `json:"title" bson:"title"`
	Order int    `json:"order" bson:"order"`
	Tasks []Task `json:"tasks" bson:"tasks"`
}

// Project is the board document: one per project, holding the ordered columns
// and the team roster. Columns own their tasks; a task is a member of exactly
// one column's list at all times.
type Project struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
	Columns     []Column           `json:"columns" bson:"columns"`
	Members     []Member           `json:"members" bson:"members"`
}
