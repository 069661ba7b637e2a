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

type TaskHandler struct {
	store       database.Store
	taskService services.TaskService
}

// CreateTask accepts any project_id string; the reference is stored verbatim
// and never checked against the projects collection.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input struct {
		ProjectID   string     `json:"project_id" binding:"required"`
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		AssignedTo  string     `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status == "" {
		input.Status = "pending"
	}
	if input.Priority == "" {
		input.Priority = "medium"
	}
	now := time.Now().UTC()
	task := models.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := h.taskService.CreateTask(c.Request.Context(), h.store, task)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func NewTaskHandler(store database.Store, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{store: store, taskService: taskService}
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	projectID := c.Query("project_id")
	tasks, err := h.taskService.GetTasks(c.Request.Context(), h.store, projectID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func handleTaskError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Task not found",
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to process task request",
		})
	}
}
