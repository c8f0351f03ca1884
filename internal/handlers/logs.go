package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/logger"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// LogsHandler handles daily log HTTP requests
type LogsHandler struct {
	logService service.DailyLogService
}

// NewLogsHandler creates a new daily logs handler
func NewLogsHandler(logService service.DailyLogService) *LogsHandler {
	return &LogsHandler{
		logService: logService,
	}
}

// GetLogs returns the user's daily logs for a date range.
// GET /api/v1/logs?start_date=2006-01-02&end_date=2006-01-02
func (h *LogsHandler) GetLogs(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	startDate, err := time.Parse(models.DateFormat, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be formatted as " + models.DateFormat})
		return
	}

	endDate, err := time.Parse(models.DateFormat, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be formatted as " + models.DateFormat})
		return
	}

	logs, err := h.logService.GetLogs(c.Request.Context(), userID.(string), startDate, endDate)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get daily logs", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// UpsertLog records or replaces a day's nutrient totals.
// PUT /api/v1/logs/:date
func (h *LogsHandler) UpsertLog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.UpsertDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.logService.UpsertLog(c.Request.Context(), userID.(string), c.Param("date"), &req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to upsert daily log", logger.Err(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, log)
}
