package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/logger"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// PreferencesHandler handles nutrient target HTTP requests
type PreferencesHandler struct {
	prefService service.PreferenceService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(prefService service.PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{
		prefService: prefService,
	}
}

// GetPreferences returns the user's nutrient targets, falling back to
// the documented defaults when none are stored.
// GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prefs, err := h.prefService.GetPreferences(c.Request.Context(), userID.(string))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get preferences", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences replaces the user's nutrient targets.
// PUT /api/v1/preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.prefService.UpdatePreferences(c.Request.Context(), userID.(string), &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to update preferences", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
