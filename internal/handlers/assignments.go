package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
	"project-school/backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type AssignmentHandler struct {
	store             database.Store
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(store database.Store, assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{store: store, assignmentService: assignmentService}
}

func (h *AssignmentHandler) LinkTask(c *gin.Context) {
	var input struct {
		UserID                 string  `json:"userId" binding:"required"`
		TaskID                 string  `json:"taskId" binding:"required"`
		AssignedBy             string  `json:"assignedBy"`
		SequenceID             *int    `json:"sequenceId"`
		ExpectedCompletionDate *string `json:"expectedCompletionDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	taskID, err := bson.ObjectIDFromHex(input.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Task ID"})
		return
	}
	if input.AssignedBy == "" {
		input.AssignedBy = "admin"
	}
	entry := models.TaskAssignment{
		AssignedBy:             input.AssignedBy,
		SequenceID:             input.SequenceID,
		ExpectedCompletionDate: input.ExpectedCompletionDate,
	}
	err = h.assignmentService.LinkTask(c.Request.Context(), h.store, input.UserID, taskID, entry)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrTaskAlreadyAssigned):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task already assigned to user"})
	case err != nil:
		handleAssignmentError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Task assigned to user"})
	}
}

func (h *AssignmentHandler) GetUserTasks(c *gin.Context) {
	userID := c.Param("user_id")
	tasks, err := h.assignmentService.GetUserTasks(c.Request.Context(), h.store, userID)
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *AssignmentHandler) UnlinkTask(c *gin.Context) {
	userID := c.Param("user_id")
	taskID := c.Param("task_id")
	err := h.assignmentService.UnlinkTask(c.Request.Context(), h.store, userID, taskID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User assignment not found"})
	case errors.Is(err, services.ErrTaskNotAssigned):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found in user's assignments"})
	case err != nil:
		handleAssignmentError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Task removed from user"})
	}
}

func (h *AssignmentHandler) CompleteTask(c *gin.Context) {
	h.setStatus(c, models.TaskStatusCompleted, "Task marked as complete")
}

func (h *AssignmentHandler) IncompleteTask(c *gin.Context) {
	h.setStatus(c, models.TaskStatusPending, "Task marked as incomplete")
}

func (h *AssignmentHandler) ActivateTask(c *gin.Context) {
	h.setStatus(c, models.TaskStatusActive, "Task marked as active")
}

func (h *AssignmentHandler) setStatus(c *gin.Context, status, message string) {
	userID := c.Param("user_id")
	taskID := c.Param("task_id")
	err := h.assignmentService.SetTaskStatus(c.Request.Context(), h.store, userID, taskID, status)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task assignment not found"})
		return
	}
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func (h *AssignmentHandler) AddComment(c *gin.Context) {
	userID := c.Param("user_id")
	taskID := c.Param("task_id")
	var input struct {
		Comment   string `json:"comment" binding:"required"`
		CommentBy string `json:"commentBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment := models.AssignmentComment{
		Comment:   input.Comment,
		CommentBy: input.CommentBy,
		CreatedAt: time.Now().UTC(),
	}
	err := h.assignmentService.AddComment(c.Request.Context(), h.store, userID, taskID, comment)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task assignment not found"})
		return
	}
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Comment added successfully"})
}

func (h *AssignmentHandler) ClearTasks(c *gin.Context) {
	userID := c.Param("user_id")
	err := h.assignmentService.ClearTasks(c.Request.Context(), h.store, userID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No assignments found for this user"})
		return
	}
	if err != nil {
		handleAssignmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Successfully cleared all assigned tasks for user %s", userID),
		"userId":  userID,
	})
}

func handleAssignmentError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process assignment request"})
}
