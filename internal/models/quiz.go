package models

import "go.mongodb.org/mongo-driver/v2/bson"

const QuizCollection = "quizzes"

type QuizQuestion struct {
	Question      string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correctAnswer"`
	Explanation   string   `json:"explanation" bson:"explanation"`
}

// Quiz holds the questions attached to a single task; at most one quiz
// exists per taskId, maintained by upsert.
type Quiz struct {
	ID        bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	TaskID    string         `json:"taskId" bson:"taskId"`
	Questions []QuizQuestion `json:"questions" bson:"questions"`
}
