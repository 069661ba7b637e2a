package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const NoticeCollection = "notices"

type Notice struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string        `json:"title" bson:"title"`
	Content   string        `json:"content" bson:"content"`
	CreatedBy string        `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
