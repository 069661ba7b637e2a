package database

import (
	"context"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"project-school/backend/internal/models"
)

// EnsureIndexes creates the secondary indexes the query paths lean on:
// project lookups by name and status, task lookups by project, and the
// per-user chat history sorted by timestamp. Safe to run on every startup.
// Indexes are a performance hint, not a correctness requirement, so a
// creation failure is logged and startup continues.
func (m *Mongo) EnsureIndexes(ctx context.Context) {
	log.Println("🔄 Ensuring collection indexes...")

	wanted := []struct {
		collection string
		indexes    []mongo.IndexModel
	}{
		{
			collection: models.ProjectCollection,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name", Value: 1}}},
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
		{
			collection: models.TaskCollection,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "project_id", Value: 1}}},
			},
		},
		{
			collection: models.ChatCollection,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}}},
			},
		},
	}

	for _, w := range wanted {
		names, err := m.collection(w.collection).Indexes().CreateMany(ctx, w.indexes)
		if err != nil {
			log.Printf("⚠️  Could not create indexes on %s: %v", w.collection, err)
			continue
		}
		log.Printf("✅ Indexes ready on %s: %s", w.collection, strings.Join(names, ", "))
	}
}
