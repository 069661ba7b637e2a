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

type NoticeHandler struct {
	store         database.Store
	noticeService services.NoticeService
}

func NewNoticeHandler(store database.Store, noticeService services.NoticeService) *NoticeHandler {
	return &NoticeHandler{store: store, noticeService: noticeService}
}

func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var input struct {
		Title     string `json:"title" binding:"required"`
		Content   string `json:"content" binding:"required"`
		CreatedBy string `json:"createdBy"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.CreatedBy == "" {
		input.CreatedBy = "admin"
	}
	notice := models.Notice{
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	created, err := h.noticeService.CreateNotice(c.Request.Context(), h.store, notice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notice request"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *NoticeHandler) GetNotices(c *gin.Context) {
	notices, err := h.noticeService.GetNotices(c.Request.Context(), h.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notice request"})
		return
	}
	c.JSON(http.StatusOK, notices)
}

func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("notice_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Notice ID"})
		return
	}
	err = h.noticeService.DeleteNotice(c.Request.Context(), h.store, id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notice request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Notice deleted"})
}
