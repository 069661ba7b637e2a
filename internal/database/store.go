package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
// List operations never return it; an empty result is an empty slice.
var ErrNotFound = errors.New("document not found")

// UpdateResult reports what a single update touched. UpsertedID is the hex
// id of a document created by an upsert, empty otherwise.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    string
}

// Store is the document store used by every service. Mongo implements it
// against the real database; Memory implements the same semantics in process
// for tests. Filters are plain equality documents (dotted paths allowed),
// updates use $set/$setOnInsert/$push/$pull.
type Store interface {
	Insert(ctx context.Context, collection string, doc interface{}) (string, error)
	Find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error)
	FindSorted(ctx context.Context, collection string, filter bson.M, sortKey string, ascending bool) ([]bson.Raw, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error)
	UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
