package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type ProjectService interface {
	CreateProject(ctx context.Context, db database.Store, project models.Project) (models.Project, error)
	GetProjects(ctx context.Context, db database.Store) ([]models.Project, error)
	GetProjectWithTasks(ctx context.Context, db database.Store, id bson.ObjectID) (models.ProjectWithTasks, error)
}

type ProjectServiceImpl struct{}

func NewProjectService() *ProjectServiceImpl {
	return &ProjectServiceImpl{}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, db database.Store, project models.Project) (models.Project, error) {
	id, err := db.Insert(ctx, models.ProjectCollection, project)
	if err != nil {
		return models.Project{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Project{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	project.ID = oid
	return project, nil
}

func (s *ProjectServiceImpl) GetProjects(ctx context.Context, db database.Store) ([]models.Project, error) {
	docs, err := db.Find(ctx, models.ProjectCollection, nil)
	if err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		var p models.Project
		if err := bson.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProjectWithTasks(ctx context.Context, db database.Store, id bson.ObjectID) (models.ProjectWithTasks, error) {
	raw, err := db.FindOne(ctx, models.ProjectCollection, bson.M{"_id": id})
	if err != nil {
		return models.ProjectWithTasks{}, err
	}
	var out models.ProjectWithTasks
	if err := bson.Unmarshal(raw, &out.Project); err != nil {
		return models.ProjectWithTasks{}, fmt.Errorf("decode project: %w", err)
	}

	docs, err := db.Find(ctx, models.TaskCollection, bson.M{"project_id": id.Hex()})
	if err != nil {
		return models.ProjectWithTasks{}, err
	}
	out.Tasks = make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		var t models.Task
		if err := bson.Unmarshal(doc, &t); err != nil {
			return models.ProjectWithTasks{}, fmt.Errorf("decode task: %w", err)
		}
		out.Tasks = append(out.Tasks, t)
	}
	return out, nil
}
