package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type ResourceService interface {
	CreateResource(ctx context.Context, db database.Store, resource models.Resource) (models.Resource, error)
	GetResources(ctx context.Context, db database.Store) ([]models.Resource, error)
	GetResourceByID(ctx context.Context, db database.Store, id bson.ObjectID) (models.Resource, error)
	UpdateResource(ctx context.Context, db database.Store, id bson.ObjectID, update models.ResourceUpdate) (models.Resource, error)
	DeleteResource(ctx context.Context, db database.Store, id bson.ObjectID) error
}

type ResourceServiceImpl struct{}

func NewResourceService() *ResourceServiceImpl {
	return &ResourceServiceImpl{}
}

func (s *ResourceServiceImpl) CreateResource(ctx context.Context, db database.Store, resource models.Resource) (models.Resource, error) {
	id, err := db.Insert(ctx, models.ResourceCollection, resource)
	if err != nil {
		return models.Resource{}, err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Resource{}, fmt.Errorf("unexpected inserted id %q: %w", id, err)
	}
	resource.ID = oid
	return resource, nil
}

// GetResources returns all resources newest first.
func (s *ResourceServiceImpl) GetResources(ctx context.Context, db database.Store) ([]models.Resource, error) {
	docs, err := db.FindSorted(ctx, models.ResourceCollection, nil, "created_at", false)
	if err != nil {
		return nil, err
	}
	resources := make([]models.Resource, 0, len(docs))
	for _, doc := range docs {
		var r models.Resource
		if err := bson.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("decode resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, nil
}

func (s *ResourceServiceImpl) GetResourceByID(ctx context.Context, db database.Store, id bson.ObjectID) (models.Resource, error) {
	doc, err := db.FindOne(ctx, models.ResourceCollection, bson.M{"_id": id})
	if err != nil {
		return models.Resource{}, err
	}
	var r models.Resource
	if err := bson.Unmarshal(doc, &r); err != nil {
		return models.Resource{}, fmt.Errorf("decode resource: %w", err)
	}
	return r, nil
}

// UpdateResource applies the non-nil fields of update and returns the stored
// document. Callers must reject an update with no fields set before calling.
func (s *ResourceServiceImpl) UpdateResource(ctx context.Context, db database.Store, id bson.ObjectID, update models.ResourceUpdate) (models.Resource, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Link != nil {
		set["link"] = *update.Link
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}

	res, err := db.UpdateOne(ctx, models.ResourceCollection, bson.M{"_id": id}, bson.M{"$set": set}, false)
	if err != nil {
		return models.Resource{}, err
	}
	if res.MatchedCount == 0 {
		return models.Resource{}, database.ErrNotFound
	}
	return s.GetResourceByID(ctx, db, id)
}

func (s *ResourceServiceImpl) DeleteResource(ctx context.Context, db database.Store, id bson.ObjectID) error {
	deleted, err := db.DeleteOne(ctx, models.ResourceCollection, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return database.ErrNotFound
	}
	return nil
}
