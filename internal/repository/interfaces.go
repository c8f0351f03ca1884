package repository

import (
	"context"
	"time"

	"github.com/macrolog/backend/internal/models"
)

// DailyLogRepository defines the interface for daily log data access
type DailyLogRepository interface {
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyLog, error)
	Upsert(ctx context.Context, log *models.DailyLog) (*models.DailyLog, error)
}

// PreferenceRepository defines the interface for user preference data access.
// GetByUserID returns (nil, nil) when the user has no preference row;
// callers apply the documented default targets in that case.
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) (*models.UserPreferences, error)
}
