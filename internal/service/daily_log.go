package service

import (
	"context"
	"fmt"
	"time"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/repository"
)

type dailyLogService struct {
	repo repository.DailyLogRepository
}

// NewDailyLogService creates a new daily log service
func NewDailyLogService(repo repository.DailyLogRepository) DailyLogService {
	return &dailyLogService{repo: repo}
}

func (s *dailyLogService) GetLogs(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyLog, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	return s.repo.GetByUserIDAndDateRange(ctx, userID, startDate, endDate)
}

func (s *dailyLogService) UpsertLog(ctx context.Context, userID, date string, req *models.UpsertDailyLogRequest) (*models.DailyLog, error) {
	if _, err := time.Parse(models.DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: must be formatted as %s", date, models.DateFormat)
	}

	log := &models.DailyLog{
		UserID:        userID,
		Date:          date,
		TotalCalories: req.TotalCalories,
		TotalProtein:  req.TotalProtein,
		TotalCarbs:    req.TotalCarbs,
		TotalFat:      req.TotalFat,
	}

	return s.repo.Upsert(ctx, log)
}
