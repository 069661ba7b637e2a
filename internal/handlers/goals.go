package handlers

import (
	"errors"
	"net/http"
	"time"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
	"project-school/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	store       database.Store
	goalService services.GoalService
}

func NewGoalHandler(store database.Store, goalService services.GoalService) *GoalHandler {
	return &GoalHandler{store: store, goalService: goalService}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var input struct {
		UserID string `json:"userId" binding:"required"`
		Goals  string `json:"goals" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	goal := models.Goal{
		UserID:    input.UserID,
		Goals:     input.Goals,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := h.goalService.CreateGoal(c.Request.Context(), h.store, goal)
	if err != nil {
		handleGoalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetGoals lists every goal, narrowed to one user when userId is supplied.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID := c.Query("userId")
	goals, err := h.goalService.GetGoals(c.Request.Context(), h.store, userID)
	if err != nil {
		handleGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func handleGoalError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process goal request"})
	}
}
