package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoConfig struct {
	URL            string
	Database       string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
}

func DefaultMongoConfig() *MongoConfig {
	return &MongoConfig{
		URL:            "mongodb://localhost:27017",
		Database:       "projects",
		MaxPoolSize:    100,
		MinPoolSize:    5,
		ConnectTimeout: 5 * time.Second,
	}
}

// Mongo is the production Store, one shared client for the process lifetime.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	config *MongoConfig
}

// Connect opens the client and verifies the server is reachable before
// returning; callers treat an error here as fatal.
func Connect(config *MongoConfig) (*Mongo, error) {
	if config == nil {
		config = DefaultMongoConfig()
	}

	opts := options.Client().
		ApplyURI(config.URL).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database pool initialized (db=%s, pool %d-%d)", config.Database, config.MinPoolSize, config.MaxPoolSize)

	return &Mongo{
		client: client,
		db:     client.Database(config.Database),
		config: config,
	}, nil
}

func (m *Mongo) collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	res, err := m.collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		return id.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (m *Mongo) Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := m.collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []bson.Raw
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *Mongo) FindSorted(ctx context.Context, collection string, filter bson.M, sortKey string, ascending bool) ([]bson.Raw, error) {
	if filter == nil {
		filter = bson.M{}
	}
	order := 1
	if !ascending {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: order}})
	cursor, err := m.collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.Raw
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	raw, err := m.collection(collection).FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M, upsert bool) (UpdateResult, error) {
	res, err := m.collection(collection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(upsert))
	if err != nil {
		return UpdateResult{}, err
	}
	out := UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	if id, ok := res.UpsertedID.(bson.ObjectID); ok {
		out.UpsertedID = id.Hex()
	}
	return out, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := m.collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
