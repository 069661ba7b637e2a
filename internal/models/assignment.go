package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const AssignmentCollection = "assignments"

// Assignment entry states. A linked task starts pending, may be marked
// active while being worked, and completed when done.
const (
	TaskStatusPending   = "pending"
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
)

// AssignmentComment is a note left on a single task assignment.
type AssignmentComment struct {
	Comment   string    `json:"comment" bson:"comment"`
	CommentBy string    `json:"commentBy" bson:"commentBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// TaskAssignment is one entry in a user's assignment document. Status moves
// between pending, active and completed; completionDate is set when the task
// is marked complete and cleared when it is reopened.
type TaskAssignment struct {
	TaskID                 string              `json:"taskId" bson:"taskId"`
	AssignedBy             string              `json:"assignedBy" bson:"assignedBy"`
	SequenceID             *int                `json:"sequenceId" bson:"sequenceId,omitempty"`
	TaskStatus             string              `json:"taskStatus" bson:"taskStatus"`
	ExpectedCompletionDate *string             `json:"expectedCompletionDate" bson:"expectedCompletionDate,omitempty"`
	CompletionDate         *string             `json:"completionDate" bson:"completionDate"`
	Comments               []AssignmentComment `json:"comments" bson:"comments"`
}

// Assignment holds all tasks assigned to one user, a single document per
// userId mutated in place as tasks are linked and unlinked.
type Assignment struct {
	ID     bson.ObjectID    `json:"id" bson:"_id,omitempty"`
	UserID string           `json:"userId" bson:"userId"`
	Tasks  []TaskAssignment `json:"tasks" bson:"tasks"`
}

// AssignedTask is the joined view returned when listing a user's tasks:
// assignment state plus the task and project details behind it.
type AssignedTask struct {
	TaskID                 string              `json:"taskId"`
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	Status                 string              `json:"status"`
	Priority               string              `json:"priority"`
	ProjectID              string              `json:"projectId"`
	ProjectName            string              `json:"projectName"`
	AssignedBy             string              `json:"assignedBy"`
	SequenceID             *int                `json:"sequenceId"`
	TaskStatus             string              `json:"taskStatus"`
	ExpectedCompletionDate *string             `json:"expectedCompletionDate"`
	CompletionDate         *string             `json:"completionDate"`
	Comments               []AssignmentComment `json:"comments"`
}
