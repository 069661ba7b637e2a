package handlers

import (
	"errors"
	"net/http"
	"time"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
	"project-school/backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProjectHandler struct {
	store          database.Store
	projectService services.ProjectService
}

func NewProjectHandler(store database.Store, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{store: store, projectService: projectService}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}
	now := time.Now().UTC()
	project := models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := h.projectService.CreateProject(c.Request.Context(), h.store, project)
	if err != nil {
		handleProjectError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectService.GetProjects(c.Request.Context(), h.store)
	if err != nil {
		handleProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Project ID"})
		return
	}
	project, err := h.projectService.GetProjectWithTasks(c.Request.Context(), h.store, id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		handleProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func handleProjectError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process project request"})
	}
}
