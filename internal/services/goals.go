package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type GoalService interface {
	CreateGoal(ctx context.Context, db database.Store, goal models.Goal) (models.Goal, error)
	GetGoals(ctx context.Context, db database.Store, userID string) ([]models.Goal, error)
}

type GoalServiceImpl struct{}

func NewGoalService() *GoalServiceImpl {
	return &GoalServiceImpl{}
}

func (s *GoalServiceImpl) CreateGoal(ctx context.Context, db database.Store, goal models.Goal) (models.Goal, error) {
	id, err := db.Insert(ctx, models.GoalCollection, goal)
	if err != nil {
		return models.Goal{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Goal{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	goal.ID = oid
	return goal, nil
}

func (s *GoalServiceImpl) GetGoals(ctx context.Context, db database.Store, userID string) ([]models.Goal, error) {
	var filter bson.M
	if userID != "" {
		filter = bson.M{"userId": userID}
	}
	docs, err := db.Find(ctx, models.GoalCollection, filter)
	if err != nil {
		return nil, err
	}
	goals := make([]models.Goal, 0, len(docs))
	for _, doc := range docs {
		var g models.Goal
		if err := bson.Unmarshal(doc, &g); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}
