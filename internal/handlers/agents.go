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

type AgentHandler struct {
	store        database.Store
	agentService services.AgentService
}

func NewAgentHandler(store database.Store, agentService services.AgentService) *AgentHandler {
	return &AgentHandler{store: store, agentService: agentService}
}

func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var input struct {
		UserID string `json:"userId" binding:"required"`
		Name   string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	agent := models.AiAgent{
		UserID:    input.UserID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := h.agentService.CreateAgent(c.Request.Context(), h.store, agent)
	if err != nil {
		handleAgentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AgentHandler) GetAgents(c *gin.Context) {
	userID := c.Query("userId")
	agents, err := h.agentService.GetAgents(c.Request.Context(), h.store, userID)
	if err != nil {
		handleAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

func handleAgentError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process agent request"})
	}
}
