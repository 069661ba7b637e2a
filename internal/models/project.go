package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const ProjectCollection = "projects"

type Project struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Status      string        `json:"status" bson:"status"`
	StartDate   *time.Time    `json:"start_date" bson:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date" bson:"end_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// ProjectWithTasks is the detail view: the project document plus every task
// referencing it through project_id.
type ProjectWithTasks struct {
	Project
	Tasks []Task `json:"tasks"`
}
