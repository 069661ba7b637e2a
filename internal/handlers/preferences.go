package handlers

import (
	"net/http"

	"project-school/backend/internal/database"
	"project-school/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	store             database.Store
	preferenceService services.PreferenceService
}

func NewPreferenceHandler(store database.Store, preferenceService services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{store: store, preferenceService: preferenceService}
}

// ManagePreferences saves a user's skill selection. Unknown skills are
// filtered out rather than rejected, matching what the selection UI offers.
func (h *PreferenceHandler) ManagePreferences(c *gin.Context) {
	var input struct {
		UserID      string   `json:"userId" binding:"required"`
		Preferences []string `json:"preferences" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefs, created, err := h.preferenceService.ManagePreferences(c.Request.Context(), h.store, input.UserID, input.Preferences)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process preference request"})
		return
	}
	verb := "updated"
	if created {
		verb = "created"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Preferences " + verb + " successfully",
		"preferences": prefs,
	})
}

// GetPreferences is a lookup by body rather than path so the selection UI can
// reuse its POST plumbing. A user without a saved document gets an empty
// default marked isDefault.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	var input struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefs, isDefault, err := h.preferenceService.GetPreferences(c.Request.Context(), h.store, input.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process preference request"})
		return
	}
	if isDefault {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"preferences": gin.H{
				"userId":      prefs.UserID,
				"preferences": prefs.Preferences,
				"isDefault":   true,
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"preferences": prefs,
	})
}
