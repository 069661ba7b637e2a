package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type ChatService interface {
	CreateMessage(ctx context.Context, db database.Store, msg models.ChatMessage) (models.ChatMessage, error)
	GetHistory(ctx context.Context, db database.Store, userID string) ([]models.ChatMessage, error)
}

type ChatServiceImpl struct{}

func NewChatService() *ChatServiceImpl {
	return &ChatServiceImpl{}
}

func (s *ChatServiceImpl) CreateMessage(ctx context.Context, db database.Store, msg models.ChatMessage) (models.ChatMessage, error) {
	id, err := db.Insert(ctx, models.ChatCollection, msg)
	if err != nil {
		return models.ChatMessage{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	msg.ID = oid
	return msg, nil
}

// GetHistory returns a user's conversation oldest first. Clients rely on the
// ascending timestamp order to render transcripts, so the sort happens in the
// store rather than here.
func (s *ChatServiceImpl) GetHistory(ctx context.Context, db database.Store, userID string) ([]models.ChatMessage, error) {
	docs, err := db.FindSorted(ctx, models.ChatCollection, bson.M{"userId": userID}, "timestamp", true)
	if err != nil {
		return nil, err
	}
	messages := make([]models.ChatMessage, 0, len(docs))
	for _, doc := range docs {
		var m models.ChatMessage
		if err := bson.Unmarshal(doc, &m); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}
