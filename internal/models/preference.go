package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const PreferenceCollection = "preferences"

// UserPreferences holds one document per user, upserted on every change.
type UserPreferences struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string        `json:"userId" bson:"userId"`
	Preferences []string      `json:"preferences" bson:"preferences"`
	CreatedAt   time.Time     `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// AllowedSkills is the closed set a preference entry may name; unknown names
// are dropped rather than rejected.
var AllowedSkills = []string{
	"All", "Frontend", "Backend", "AI", "ML", "Devops",
	"Data Analysis", "Data", "DSA", "Fullstack", "GenAI", "Analytics",
}
