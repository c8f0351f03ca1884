package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/pkg/supabase"
)

type preferenceRepository struct {
	client *supabase.Client
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(client *supabase.Client) PreferenceRepository {
	return &preferenceRepository{client: client}
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := map[string]string{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
	}

	body, err := r.client.Query("user_preferences", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs []models.UserPreferences
	if err := json.Unmarshal(body, &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// No row is not an error: the caller falls back to default targets
	if len(prefs) == 0 {
		return nil, nil
	}

	return &prefs[0], nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) (*models.UserPreferences, error) {
	data := map[string]interface{}{
		"user_id":        prefs.UserID,
		"calorie_target": prefs.CalorieTarget,
		"protein_target": prefs.ProteinTarget,
		"carb_target":    prefs.CarbTarget,
		"fat_target":     prefs.FatTarget,
	}

	body, err := r.client.Upsert("user_preferences", data, "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preferences: %w", err)
	}

	var result []models.UserPreferences
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no preferences returned")
	}

	return &result[0], nil
}
