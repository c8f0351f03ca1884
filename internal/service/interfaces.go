package service

import (
	"context"
	"time"

	"github.com/macrolog/backend/internal/models"
)

// InsightsService computes ranked weekly insights for a user
type InsightsService interface {
	// GetUserInsights analyzes the trailing week of daily logs. It returns
	// a Success or InsufficientData result; any fetch or computation
	// failure is returned as an error for the caller to log and map to
	// the error status.
	GetUserInsights(ctx context.Context, userID string) (*models.InsightsResult, error)
}

// DailyLogService defines the interface for daily log business logic
type DailyLogService interface {
	GetLogs(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyLog, error)
	UpsertLog(ctx context.Context, userID, date string, req *models.UpsertDailyLogRequest) (*models.DailyLog, error)
}

// PreferenceService defines the interface for nutrient target business logic
type PreferenceService interface {
	GetPreferences(ctx context.Context, userID string) (*models.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}
