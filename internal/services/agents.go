package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type AgentService interface {
	CreateAgent(ctx context.Context, db database.Store, agent models.AiAgent) (models.AiAgent, error)
	GetAgents(ctx context.Context, db database.Store, userID string) ([]models.AiAgent, error)
}

type AgentServiceImpl struct{}

func NewAgentService() *AgentServiceImpl {
	return &AgentServiceImpl{}
}

func (s *AgentServiceImpl) CreateAgent(ctx context.Context, db database.Store, agent models.AiAgent) (models.AiAgent, error) {
	id, err := db.Insert(ctx, models.AgentCollection, agent)
	if err != nil {
		return models.AiAgent{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.AiAgent{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	agent.ID = oid
	return agent, nil
}

// GetAgents returns every registered agent, or one user's agents when userID
// is non-empty. Multiple agents per user are allowed.
func (s *AgentServiceImpl) GetAgents(ctx context.Context, db database.Store, userID string) ([]models.AiAgent, error) {
	var filter bson.M
	if userID != "" {
		filter = bson.M{"userId": userID}
	}
	docs, err := db.Find(ctx, models.AgentCollection, filter)
	if err != nil {
		return nil, err
	}
	agents := make([]models.AiAgent, 0, len(docs))
	for _, doc := range docs {
		var a models.AiAgent
		if err := bson.Unmarshal(doc, &a); err != nil {
			return nil, fmt.Errorf("decode agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, nil
}
