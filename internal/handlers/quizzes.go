package handlers

import (
	"errors"
	"net/http"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
	"project-school/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	store       database.Store
	quizService services.QuizService
}

func NewQuizHandler(store database.Store, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{store: store, quizService: quizService}
}

// UpsertQuiz replaces the question set for a task, creating the quiz on
// first submission. Responds 201 either way.
func (h *QuizHandler) UpsertQuiz(c *gin.Context) {
	var input struct {
		TaskID    string                `json:"taskId" binding:"required"`
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Questions == nil {
		input.Questions = []models.QuizQuestion{}
	}
	quiz := models.Quiz{
		TaskID:    input.TaskID,
		Questions: input.Questions,
	}
	stored, _, err := h.quizService.UpsertQuiz(c.Request.Context(), h.store, quiz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process quiz request"})
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *QuizHandler) GetQuizByTask(c *gin.Context) {
	taskID := c.Param("task_id")
	quiz, err := h.quizService.GetQuizByTask(c.Request.Context(), h.store, taskID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found for this task"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process quiz request"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}
