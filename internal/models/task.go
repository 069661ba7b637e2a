package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const TaskCollection = "tasks"

// Task references its project through a free-text project_id; the reference
// is stored as given and never checked against the projects collection.
type Task struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID   string        `json:"project_id" bson:"project_id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Status      string        `json:"status" bson:"status"`
	Priority    string        `json:"priority" bson:"priority"`
	AssignedTo  string        `json:"assigned_to" bson:"assigned_to"`
	DueDate     *time.Time    `json:"due_date" bson:"due_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
