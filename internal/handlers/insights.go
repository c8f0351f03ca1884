package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/logger"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// InsightsHandler handles insight-related HTTP requests
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// GetInsights returns ranked weekly insights for the authenticated user.
// GET /api/v1/insights
//
// The response is always the InsightsResult union: success carries the
// ranked insights and weekly summary, insufficient_data carries the days
// remaining before the first full week, and any failure collapses to the
// error status with the cause logged here rather than exposed.
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())

	result, err := h.insightsService.GetUserInsights(c.Request.Context(), userID.(string))
	if err != nil {
		log.Error("failed to compute insights",
			logger.Err(err),
			logger.String("user_id", userID.(string)),
		)
		c.JSON(http.StatusOK, models.InsightsResult{Status: models.InsightsStatusError})
		return
	}

	c.JSON(http.StatusOK, result)
}
