package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type NoticeService interface {
	CreateNotice(ctx context.Context, db database.Store, notice models.Notice) (models.Notice, error)
	GetNotices(ctx context.Context, db database.Store) ([]models.Notice, error)
	DeleteNotice(ctx context.Context, db database.Store, id bson.ObjectID) error
}

type NoticeServiceImpl struct{}

func NewNoticeService() *NoticeServiceImpl {
	return &NoticeServiceImpl{}
}

func (s *NoticeServiceImpl) CreateNotice(ctx context.Context, db database.Store, notice models.Notice) (models.Notice, error) {
	id, err := db.Insert(ctx, models.NoticeCollection, notice)
	if err != nil {
		return models.Notice{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Notice{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	notice.ID = oid
	return notice, nil
}

// GetNotices returns all notices newest first.
func (s *NoticeServiceImpl) GetNotices(ctx context.Context, db database.Store) ([]models.Notice, error) {
	docs, err := db.FindSorted(ctx, models.NoticeCollection, nil, "createdAt", false)
	if err != nil {
		return nil, err
	}
	notices := make([]models.Notice, 0, len(docs))
	for _, doc := range docs {
		var n models.Notice
		if err := bson.Unmarshal(doc, &n); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, nil
}

func (s *NoticeServiceImpl) DeleteNotice(ctx context.Context, db database.Store, id bson.ObjectID) error {
	deleted, err := db.DeleteOne(ctx, models.NoticeCollection, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return database.ErrNotFound
	}
	return nil
}
