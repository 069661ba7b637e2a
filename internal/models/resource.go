package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const ResourceCollection = "resources"

// Resource is a learning resource (video, doc, tutorial) shared with users.
type Resource struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Link        string        `json:"link" bson:"link"`
	Category    string        `json:"category" bson:"category"`
	Tags        []string      `json:"tags" bson:"tags"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// ResourceUpdate carries a partial update. Nil fields are left untouched.
type ResourceUpdate struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Link        *string   `json:"link"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}
