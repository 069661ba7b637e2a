package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const GoalCollection = "goals"

type Goal struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string        `json:"userId" bson:"userId"`
	Goals     string        `json:"goals" bson:"goals"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}
