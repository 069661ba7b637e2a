package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, db database.Store, task models.Task) (models.Task, error)
	GetTasks(ctx context.Context, db database.Store, projectID string) ([]models.Task, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, db database.Store, task models.Task) (models.Task, error) {
	id, err := db.Insert(ctx, models.TaskCollection, task)
	if err != nil {
		return models.Task{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	task.ID = oid
	return task, nil
}

// GetTasks lists every task, narrowed to one project when projectID is
// non-empty. The filter is a verbatim string match on project_id.
func (s *TaskServiceImpl) GetTasks(ctx context.Context, db database.Store, projectID string) ([]models.Task, error) {
	var filter bson.M
	if projectID != "" {
		filter = bson.M{"project_id": projectID}
	}
	docs, err := db.Find(ctx, models.TaskCollection, filter)
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		var t models.Task
		if err := bson.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
