package models

import "fmt"

// Metric identifies one of the four tracked nutrients.
type Metric string

const (
	MetricCalories Metric = "calories"
	MetricProtein  Metric = "protein"
	MetricCarbs    Metric = "carbs"
	MetricFat      Metric = "fat"
)

// Metrics returns all metrics in their canonical iteration order.
// Ranking ties are broken by this order, so it must stay stable.
func Metrics() []Metric {
	return []Metric{MetricCalories, MetricProtein, MetricCarbs, MetricFat}
}

// Color returns the display color token for a metric. Colors are fixed
// per metric so the client can chart without its own lookup table.
func (m Metric) Color() string {
	switch m {
	case MetricCalories:
		return "#FF6B6B"
	case MetricProtein:
		return "#4ECDC4"
	case MetricCarbs:
		return "#FFD93D"
	case MetricFat:
		return "#A78BFA"
	default:
		return "#9CA3AF"
	}
}

// Label returns the human-readable name for a metric.
func (m Metric) Label() string {
	switch m {
	case MetricCalories:
		return "Calorie"
	case MetricProtein:
		return "Protein"
	case MetricCarbs:
		return "Carb"
	case MetricFat:
		return "Fat"
	default:
		return string(m)
	}
}

// AnalysisType represents the kind of analysis behind an insight
type AnalysisType string

const (
	AnalysisTrend       AnalysisType = "trend"
	AnalysisConsistency AnalysisType = "consistency"
)

// Sentiment represents how an insight is framed to the user
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// InsightData carries the numeric evidence behind an insight.
// Exactly one of ChangePercent / CoefficientVariation is set,
// matching the analysis type.
type InsightData struct {
	ChangePercent        *float64  `json:"change_percent,omitempty"`
	CoefficientVariation *float64  `json:"coefficient_variation,omitempty"`
	Series               []float64 `json:"series"`
	PeriodDays           int       `json:"period_days"`
}

// Insight is one classified finding about a single metric. Insights are
// constructed fresh per request and never mutated after creation.
type Insight struct {
	ID           string       `json:"id"`
	AnalysisType AnalysisType `json:"analysis_type"`
	Sentiment    Sentiment    `json:"sentiment"`
	Metric       Metric       `json:"metric"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Color        string       `json:"color"`
	Data         InsightData  `json:"data"`
}

// InsightID builds the deterministic identifier for an insight.
// Recomputing on identical inputs must yield identical IDs.
func InsightID(metric Metric, analysisType AnalysisType, sentiment Sentiment) string {
	return fmt.Sprintf("%s-%s-%s", analysisType, metric, sentiment)
}

// WeeklyMetricSummary is the per-metric display summary for charting.
// Average, Percentage and Trend are rounded for display.
type WeeklyMetricSummary struct {
	Series     []float64 `json:"series"`
	Target     float64   `json:"target"`
	Average    int       `json:"average"`
	Percentage int       `json:"percentage"`
	Trend      int       `json:"trend"`
}

// WeeklySummary aggregates the four per-metric summaries
type WeeklySummary struct {
	Calories WeeklyMetricSummary `json:"calories"`
	Protein  WeeklyMetricSummary `json:"protein"`
	Carbs    WeeklyMetricSummary `json:"carbs"`
	Fat      WeeklyMetricSummary `json:"fat"`
}

// InsightsStatus is the discriminant of an InsightsResult
type InsightsStatus string

const (
	InsightsStatusSuccess          InsightsStatus = "success"
	InsightsStatusInsufficientData InsightsStatus = "insufficient_data"
	InsightsStatusError            InsightsStatus = "error"
)

// InsightsResult is the boundary output of the insight engine.
// On success it carries at most three ranked insights and the weekly
// summary; on insufficient data it carries the number of days still
// needed; on error it carries nothing.
type InsightsResult struct {
	Status        InsightsStatus `json:"status"`
	Insights      []Insight      `json:"insights,omitempty"`
	WeeklySummary *WeeklySummary `json:"weekly_summary,omitempty"`
	DaysRemaining int            `json:"days_remaining,omitempty"`
}
