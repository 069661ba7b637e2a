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

type ResourceHandler struct {
	store           database.Store
	resourceService services.ResourceService
}

func NewResourceHandler(store database.Store, resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{store: store, resourceService: resourceService}
}

func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Link        string   `json:"link" binding:"required"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Category == "" {
		input.Category = "General"
	}
	if input.Tags == nil {
		input.Tags = []string{}
	}
	resource := models.Resource{
		Name:        input.Name,
		Description: input.Description,
		Link:        input.Link,
		Category:    input.Category,
		Tags:        input.Tags,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := h.resourceService.CreateResource(c.Request.Context(), h.store, resource)
	if err != nil {
		handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ResourceHandler) GetResources(c *gin.Context) {
	resources, err := h.resourceService.GetResources(c.Request.Context(), h.store)
	if err != nil {
		handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) GetResourceByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("resource_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Resource ID"})
		return
	}
	resource, err := h.resourceService.GetResourceByID(c.Request.Context(), h.store, id)
	if err != nil {
		handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("resource_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Resource ID"})
		return
	}
	var update models.ResourceUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if update.Name == nil && update.Description == nil && update.Link == nil &&
		update.Category == nil && update.Tags == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	resource, err := h.resourceService.UpdateResource(c.Request.Context(), h.store, id, update)
	if err != nil {
		handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("resource_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Resource ID"})
		return
	}
	if err := h.resourceService.DeleteResource(c.Request.Context(), h.store, id); err != nil {
		handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func handleResourceError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process resource request"})
	}
}
