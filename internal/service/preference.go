package service

import (
	"context"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/repository"
)

type preferenceService struct {
	repo repository.PreferenceRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) GetPreferences(ctx context.Context, userID string) (*models.PreferencesResponse, error) {
	prefs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// New users have no row yet; answer with the documented defaults
	// instead of a 404 so the client always has targets to render.
	if prefs == nil {
		defaults := models.DefaultTargets()
		return &models.PreferencesResponse{
			UserPreferences: models.UserPreferences{
				UserID:        userID,
				CalorieTarget: defaults.Calories,
				ProteinTarget: defaults.Protein,
				CarbTarget:    defaults.Carbs,
				FatTarget:     defaults.Fat,
			},
			Defaults: true,
		}, nil
	}

	return &models.PreferencesResponse{UserPreferences: *prefs}, nil
}

func (s *preferenceService) UpdatePreferences(ctx context.Context, userID string, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{
		UserID:        userID,
		CalorieTarget: req.CalorieTarget,
		ProteinTarget: req.ProteinTarget,
		CarbTarget:    req.CarbTarget,
		FatTarget:     req.FatTarget,
	}

	return s.repo.Upsert(ctx, prefs)
}
