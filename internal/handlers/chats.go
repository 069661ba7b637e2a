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

type ChatHandler struct {
	store       database.Store
	chatService services.ChatService
}

func NewChatHandler(store database.Store, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{store: store, chatService: chatService}
}

// PostMessage stamps the arrival time itself so history order cannot be
// forged by the client.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var input struct {
		UserID   string `json:"userId" binding:"required"`
		UserType string `json:"userType" binding:"required"`
		Message  string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg := models.ChatMessage{
		UserID:    input.UserID,
		UserType:  input.UserType,
		Message:   input.Message,
		Timestamp: time.Now().UTC(),
	}
	created, err := h.chatService.CreateMessage(c.Request.Context(), h.store, msg)
	if err != nil {
		handleChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetHistory returns one user's messages oldest first.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID := c.Param("user_id")
	messages, err := h.chatService.GetHistory(c.Request.Context(), h.store, userID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func handleChatError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process chat request"})
	}
}
