package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const ChatCollection = "chats"

// ChatMessage is append-only; the timestamp is stamped by the handler when
// the message arrives, so per-user history sorts by arrival order.
type ChatMessage struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string        `json:"userId" bson:"userId"`
	UserType  string        `json:"userType" bson:"userType"`
	Message   string        `json:"message" bson:"message"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}
