package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

var (
	ErrTaskAlreadyAssigned = errors.New("task already assigned to user")
	ErrTaskNotAssigned     = errors.New("task not assigned to user")
)

type AssignmentService interface {
	LinkTask(ctx context.Context, db database.Store, userID string, taskID bson.ObjectID, entry models.TaskAssignment) error
	GetUserTasks(ctx context.Context, db database.Store, userID string) ([]models.AssignedTask, error)
	UnlinkTask(ctx context.Context, db database.Store, userID, taskID string) error
	SetTaskStatus(ctx context.Context, db database.Store, userID, taskID, status string) error
	AddComment(ctx context.Context, db database.Store, userID, taskID string, comment models.AssignmentComment) error
	ClearTasks(ctx context.Context, db database.Store, userID string) error
}

type AssignmentServiceImpl struct{}

func NewAssignmentService() *AssignmentServiceImpl {
	return &AssignmentServiceImpl{}
}

// LinkTask attaches a task to a user's assignment document, creating the
// document on first link. The task must exist; linking the same task twice
// returns ErrTaskAlreadyAssigned.
func (s *AssignmentServiceImpl) LinkTask(ctx context.Context, db database.Store, userID string, taskID bson.ObjectID, entry models.TaskAssignment) error {
	if _, err := db.FindOne(ctx, models.TaskCollection, bson.M{"_id": taskID}); err != nil {
		return err
	}
	entry.TaskID = taskID.Hex()
	if entry.TaskStatus == "" {
		entry.TaskStatus = models.TaskStatusPending
	}
	if entry.Comments == nil {
		entry.Comments = []models.AssignmentComment{}
	}

	doc, err := db.FindOne(ctx, models.AssignmentCollection, bson.M{"userId": userID})
	if errors.Is(err, database.ErrNotFound) {
		_, err := db.Insert(ctx, models.AssignmentCollection, models.Assignment{
			UserID: userID,
			Tasks:  []models.TaskAssignment{entry},
		})
		return err
	}
	if err != nil {
		return err
	}

	var assignment models.Assignment
	if err := bson.Unmarshal(doc, &assignment); err != nil {
		return fmt.Errorf("decode assignment: %w", err)
	}
	for _, t := range assignment.Tasks {
		if t.TaskID == entry.TaskID {
			return ErrTaskAlreadyAssigned
		}
	}

	_, err = db.UpdateOne(ctx, models.AssignmentCollection,
		bson.M{"userId": userID},
		bson.M{"$push": bson.M{"tasks": entry}}, false)
	return err
}

// GetUserTasks joins each assignment entry with its task and project details.
// Entries whose task no longer exists are skipped; a missing or unreadable
// project falls back to "Unknown Project". Results come back ordered by
// sequenceId, entries without one last.
func (s *AssignmentServiceImpl) GetUserTasks(ctx context.Context, db database.Store, userID string) ([]models.AssignedTask, error) {
	doc, err := db.FindOne(ctx, models.AssignmentCollection, bson.M{"userId": userID})
	if errors.Is(err, database.ErrNotFound) {
		return []models.AssignedTask{}, nil
	}
	if err != nil {
		return nil, err
	}
	var assignment models.Assignment
	if err := bson.Unmarshal(doc, &assignment); err != nil {
		return nil, fmt.Errorf("decode assignment: %w", err)
	}

	tasks := make([]models.AssignedTask, 0, len(assignment.Tasks))
	for _, entry := range assignment.Tasks {
		oid, err := bson.ObjectIDFromHex(entry.TaskID)
		if err != nil {
			continue
		}
		taskDoc, err := db.FindOne(ctx, models.TaskCollection, bson.M{"_id": oid})
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var task models.Task
		if err := bson.Unmarshal(taskDoc, &task); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}

		projectName := "Unknown Project"
		if pid, err := bson.ObjectIDFromHex(task.ProjectID); err == nil {
			projectDoc, err := db.FindOne(ctx, models.ProjectCollection, bson.M{"_id": pid})
			switch {
			case err == nil:
				var project models.Project
				if err := bson.Unmarshal(projectDoc, &project); err != nil {
					return nil, fmt.Errorf("decode project: %w", err)
				}
				projectName = project.Name
			case !errors.Is(err, database.ErrNotFound):
				return nil, err
			}
		}

		tasks = append(tasks, models.AssignedTask{
			TaskID:                 entry.TaskID,
			Title:                  task.Title,
			Description:            task.Description,
			Status:                 task.Status,
			Priority:               task.Priority,
			ProjectID:              task.ProjectID,
			ProjectName:            projectName,
			AssignedBy:             entry.AssignedBy,
			SequenceID:             entry.SequenceID,
			TaskStatus:             entry.TaskStatus,
			ExpectedCompletionDate: entry.ExpectedCompletionDate,
			CompletionDate:         entry.CompletionDate,
			Comments:               entry.Comments,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return sequenceOrLast(tasks[i].SequenceID) < sequenceOrLast(tasks[j].SequenceID)
	})
	return tasks, nil
}

// sequenceOrLast orders unsequenced entries after every explicit sequence.
func sequenceOrLast(seq *int) int {
	if seq == nil {
		return 999
	}
	return *seq
}

// UnlinkTask removes one entry from the user's assignment document. A user
// with no assignment document gets ErrNotFound; a document that does not
// carry the task gets ErrTaskNotAssigned.
func (s *AssignmentServiceImpl) UnlinkTask(ctx context.Context, db database.Store, userID, taskID string) error {
	res, err := db.UpdateOne(ctx, models.AssignmentCollection,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"tasks": bson.M{"taskId": taskID}}}, false)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrTaskNotAssigned
	}
	return nil
}

// SetTaskStatus moves one assignment entry to the given state. Completing a
// task stamps completionDate; reopening to pending clears it; active changes
// the status alone.
func (s *AssignmentServiceImpl) SetTaskStatus(ctx context.Context, db database.Store, userID, taskID, status string) error {
	set := bson.M{"tasks.$.taskStatus": status}
	switch status {
	case models.TaskStatusCompleted:
		set["tasks.$.completionDate"] = time.Now().UTC().Format(time.RFC3339)
	case models.TaskStatusPending:
		set["tasks.$.completionDate"] = nil
	}

	res, err := db.UpdateOne(ctx, models.AssignmentCollection,
		bson.M{"userId": userID, "tasks.taskId": taskID},
		bson.M{"$set": set}, false)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// AddComment appends a comment to one assignment entry.
func (s *AssignmentServiceImpl) AddComment(ctx context.Context, db database.Store, userID, taskID string, comment models.AssignmentComment) error {
	res, err := db.UpdateOne(ctx, models.AssignmentCollection,
		bson.M{"userId": userID, "tasks.taskId": taskID},
		bson.M{"$push": bson.M{"tasks.$.comments": comment}}, false)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// ClearTasks empties a user's assignment list in one step. The document
// itself stays so future links reuse it.
func (s *AssignmentServiceImpl) ClearTasks(ctx context.Context, db database.Store, userID string) error {
	res, err := db.UpdateOne(ctx, models.AssignmentCollection,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"tasks": []models.TaskAssignment{}}}, false)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
