package models

import "time"

// DateFormat is the wire format for daily log dates (a Postgres date column).
const DateFormat = "2006-01-02"

// DailyLog represents one day of nutrient totals for a user.
// Totals are nullable in storage: a day logged with no value for a
// nutrient comes back as null, which the insight engine reads as 0.
type DailyLog struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"`
	TotalCalories *float64  `json:"total_calories"`
	TotalProtein  *float64  `json:"total_protein"`
	TotalCarbs    *float64  `json:"total_carbs"`
	TotalFat      *float64  `json:"total_fat"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Total returns the logged total for a metric, with null read as 0.
func (l *DailyLog) Total(m Metric) float64 {
	var v *float64
	switch m {
	case MetricCalories:
		v = l.TotalCalories
	case MetricProtein:
		v = l.TotalProtein
	case MetricCarbs:
		v = l.TotalCarbs
	case MetricFat:
		v = l.TotalFat
	}
	if v == nil {
		return 0
	}
	return *v
}

// UserPreferences represents a user's stored nutrient goals
type UserPreferences struct {
	UserID        string    `json:"user_id"`
	CalorieTarget float64   `json:"calorie_target"`
	ProteinTarget float64   `json:"protein_target"`
	CarbTarget    float64   `json:"carb_target"`
	FatTarget     float64   `json:"fat_target"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Targets converts stored preferences into a NutrientTargets value
func (p *UserPreferences) Targets() NutrientTargets {
	return NutrientTargets{
		Calories: p.CalorieTarget,
		Protein:  p.ProteinTarget,
		Carbs:    p.CarbTarget,
		Fat:      p.FatTarget,
	}
}

// NutrientTargets holds the four positive daily goals used by the
// weekly aggregator.
type NutrientTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DefaultTargets returns the documented fallback goals applied when a
// user has no preference record.
func DefaultTargets() NutrientTargets {
	return NutrientTargets{
		Calories: 2000,
		Protein:  150,
		Carbs:    250,
		Fat:      65,
	}
}

// For returns the target for a single metric
func (t NutrientTargets) For(m Metric) float64 {
	switch m {
	case MetricCalories:
		return t.Calories
	case MetricProtein:
		return t.Protein
	case MetricCarbs:
		return t.Carbs
	case MetricFat:
		return t.Fat
	default:
		return 0
	}
}

// UpsertDailyLogRequest represents the request to record a day's totals
type UpsertDailyLogRequest struct {
	TotalCalories *float64 `json:"total_calories" binding:"omitempty,gte=0"`
	TotalProtein  *float64 `json:"total_protein" binding:"omitempty,gte=0"`
	TotalCarbs    *float64 `json:"total_carbs" binding:"omitempty,gte=0"`
	TotalFat      *float64 `json:"total_fat" binding:"omitempty,gte=0"`
}

// UpdatePreferencesRequest represents the request to replace nutrient goals
type UpdatePreferencesRequest struct {
	CalorieTarget float64 `json:"calorie_target" binding:"required,gt=0"`
	ProteinTarget float64 `json:"protein_target" binding:"required,gt=0"`
	CarbTarget    float64 `json:"carb_target" binding:"required,gt=0"`
	FatTarget     float64 `json:"fat_target" binding:"required,gt=0"`
}

// PreferencesResponse wraps stored or default targets for the client.
// Defaults is true when no preference row exists yet.
type PreferencesResponse struct {
	UserPreferences
	Defaults bool `json:"defaults"`
}
