package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/repository"
)

// minWindowDays is the minimum number of logged days before insights
// unlock. Users in their first week get an InsufficientData result,
// which is an expected state rather than an error.
const minWindowDays = 7

type insightsService struct {
	logRepo  repository.DailyLogRepository
	prefRepo repository.PreferenceRepository
}

// NewInsightsService creates a new insights service
func NewInsightsService(logRepo repository.DailyLogRepository, prefRepo repository.PreferenceRepository) InsightsService {
	return &insightsService{
		logRepo:  logRepo,
		prefRepo: prefRepo,
	}
}

func (s *insightsService) GetUserInsights(ctx context.Context, userID string) (*models.InsightsResult, error) {
	// Trailing window: today-6 through today inclusive, 7 calendar days
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -(minWindowDays - 1))

	// The two fetches have no data dependency, so overlap them
	var (
		logs  []models.DailyLog
		prefs *models.UserPreferences
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.logRepo.GetByUserIDAndDateRange(gctx, userID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to get daily logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prefs, err = s.prefRepo.GetByUserID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get preferences: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(logs) < minWindowDays {
		return &models.InsightsResult{
			Status:        models.InsightsStatusInsufficientData,
			DaysRemaining: minWindowDays - len(logs),
		}, nil
	}

	// A unique (user_id, date) constraint caps the window at 7 rows;
	// keep the most recent week if the store ever returns more.
	if len(logs) > minWindowDays {
		logs = logs[len(logs)-minWindowDays:]
	}

	targets := models.DefaultTargets()
	if prefs != nil {
		targets = prefs.Targets()
	}

	series := buildMetricSeries(logs)

	return &models.InsightsResult{
		Status:        models.InsightsStatusSuccess,
		Insights:      rankInsights(generateInsights(series)),
		WeeklySummary: buildWeeklySummary(series, targets),
	}, nil
}
