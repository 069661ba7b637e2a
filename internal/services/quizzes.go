package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
)

type QuizService interface {
	UpsertQuiz(ctx context.Context, db database.Store, quiz models.Quiz) (models.Quiz, bool, error)
	GetQuizByTask(ctx context.Context, db database.Store, taskID string) (models.Quiz, error)
}

type QuizServiceImpl struct{}

func NewQuizService() *QuizServiceImpl {
	return &QuizServiceImpl{}
}

// UpsertQuiz stores the quiz for its task, replacing any earlier question set.
// The second return reports whether a new document was created.
func (s *QuizServiceImpl) UpsertQuiz(ctx context.Context, db database.Store, quiz models.Quiz) (models.Quiz, bool, error) {
	update := bson.M{
		"$set": bson.M{
			"taskId":    quiz.TaskID,
			"questions": quiz.Questions,
		},
	}
	res, err := db.UpdateOne(ctx, models.QuizCollection, bson.M{"taskId": quiz.TaskID}, update, true)
	if err != nil {
		return models.Quiz{}, false, err
	}
	created := res.UpsertedID != ""

	stored, err := s.GetQuizByTask(ctx, db, quiz.TaskID)
	if err != nil {
		return models.Quiz{}, false, err
	}
	return stored, created, nil
}

func (s *QuizServiceImpl) GetQuizByTask(ctx context.Context, db database.Store, taskID string) (models.Quiz, error) {
	doc, err := db.FindOne(ctx, models.QuizCollection, bson.M{"taskId": taskID})
	if err != nil {
		return models.Quiz{}, err
	}
	var quiz models.Quiz
	if err := bson.Unmarshal(doc, &quiz); err != nil {
		return models.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	return quiz, nil
}
