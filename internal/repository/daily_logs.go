package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/pkg/supabase"
)

type dailyLogRepository struct {
	client *supabase.Client
}

// NewDailyLogRepository creates a new daily log repository
func NewDailyLogRepository(client *supabase.Client) DailyLogRepository {
	return &dailyLogRepository{client: client}
}

func (r *dailyLogRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyLog, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("gte.%s", startDate.Format(models.DateFormat)),
		"and":     fmt.Sprintf("(date.lte.%s)", endDate.Format(models.DateFormat)),
		"select":  "*",
		"order":   "date.asc",
	}

	body, err := r.client.Query("daily_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily logs: %w", err)
	}

	var logs []models.DailyLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return logs, nil
}

func (r *dailyLogRepository) Upsert(ctx context.Context, log *models.DailyLog) (*models.DailyLog, error) {
	data := map[string]interface{}{
		"user_id":        log.UserID,
		"date":           log.Date,
		"total_calories": log.TotalCalories,
		"total_protein":  log.TotalProtein,
		"total_carbs":    log.TotalCarbs,
		"total_fat":      log.TotalFat,
	}

	body, err := r.client.Upsert("daily_logs", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily log: %w", err)
	}

	var logs []models.DailyLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(logs) == 0 {
		return nil, fmt.Errorf("no daily log returned")
	}

	return &logs[0], nil
}
