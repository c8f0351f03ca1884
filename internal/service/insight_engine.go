package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/macrolog/backend/internal/models"
)

const (
	// Trend changes at or below this absolute percent are noise
	trendSignificanceThreshold = 5.0

	// Coefficient-of-variation bands for consistency classification.
	// The band between the two is deliberately silent: middling
	// consistency is not worth surfacing.
	cvConsistentBelow   = 0.15
	cvInconsistentAbove = 0.35

	// Maximum insights returned to the client
	maxRankedInsights = 3

	// Ranking weights
	weightNegativeSentiment   = 1.5
	weightNegativeConsistency = 1.2
	weightCaloriesMetric      = 1.1
)

// metricSeries holds one trailing week of daily totals per metric
type metricSeries map[models.Metric][]float64

// buildMetricSeries extracts the four per-metric series from date-ordered
// daily log rows. Null totals read as 0.
func buildMetricSeries(logs []models.DailyLog) metricSeries {
	series := make(metricSeries, len(models.Metrics()))
	for _, m := range models.Metrics() {
		values := make([]float64, 0, len(logs))
		for i := range logs {
			values = append(values, logs[i].Total(m))
		}
		series[m] = values
	}
	return series
}

type trendTemplate struct {
	title       string
	description string // fmt template taking the rounded absolute percent
}

// trendTemplates maps (metric, sentiment) to user-facing copy. Every
// metric has exactly two entries because the neutral case emits nothing.
var trendTemplates = map[models.Metric]map[models.Sentiment]trendTemplate{
	models.MetricCalories: {
		models.SentimentPositive: {
			title:       "Calorie Reduction",
			description: "Great job! Your calorie intake decreased by %d%% this week.",
		},
		models.SentimentNegative: {
			title:       "Calorie Increase",
			description: "Your calorie intake increased by %d%% this week. Keep an eye on portion sizes.",
		},
	},
	models.MetricProtein: {
		models.SentimentPositive: {
			title:       "Protein Boost",
			description: "Nice! Your protein intake increased by %d%% this week.",
		},
		models.SentimentNegative: {
			title:       "Protein Dip",
			description: "Your protein intake decreased by %d%% this week. Consider adding a protein source to your meals.",
		},
	},
	models.MetricCarbs: {
		models.SentimentPositive: {
			title:       "Carb Boost",
			description: "Your carb intake increased by %d%% this week, giving you more fuel for the day.",
		},
		models.SentimentNegative: {
			title:       "Carb Dip",
			description: "Your carb intake decreased by %d%% this week. Make sure you're eating enough to stay energized.",
		},
	},
	models.MetricFat: {
		models.SentimentPositive: {
			title:       "Fat Increase",
			description: "Your fat intake increased by %d%% this week.",
		},
		models.SentimentNegative: {
			title:       "Fat Reduction",
			description: "Your fat intake decreased by %d%% this week. Healthy fats help keep you full.",
		},
	},
}

// trendSentiment classifies the direction of a significant trend.
// Calories invert: eating less is framed as good, so a falling calorie
// trend is positive. The other three metrics frame rising as good.
func trendSentiment(metric models.Metric, trend float64) models.Sentiment {
	rising := trend > 0
	if metric == models.MetricCalories {
		if rising {
			return models.SentimentNegative
		}
		return models.SentimentPositive
	}
	if rising {
		return models.SentimentPositive
	}
	return models.SentimentNegative
}

// evaluateTrendInsight produces a trend insight for a metric, or nil
// when the week-over-week change is insignificant.
func evaluateTrendInsight(metric models.Metric, series []float64) *models.Insight {
	trend := trendPercent(series)
	if math.Abs(trend) <= trendSignificanceThreshold {
		return nil
	}

	sentiment := trendSentiment(metric, trend)
	tmpl := trendTemplates[metric][sentiment]
	change := trend

	return &models.Insight{
		ID:           models.InsightID(metric, models.AnalysisTrend, sentiment),
		AnalysisType: models.AnalysisTrend,
		Sentiment:    sentiment,
		Metric:       metric,
		Title:        tmpl.title,
		Description:  fmt.Sprintf(tmpl.description, int(math.Round(math.Abs(trend)))),
		Color:        metric.Color(),
		Data: models.InsightData{
			ChangePercent: &change,
			Series:        series,
			PeriodDays:    trendWindowDays,
		},
	}
}

// evaluateConsistencyInsight produces a consistency insight for a
// metric, or nil when the coefficient of variation sits in the silent
// middle band.
func evaluateConsistencyInsight(metric models.Metric, series []float64) *models.Insight {
	cv := coefficientOfVariation(series)

	var sentiment models.Sentiment
	var title, description string
	label := metric.Label()

	switch {
	case cv < cvConsistentBelow:
		sentiment = models.SentimentPositive
		title = fmt.Sprintf("Consistent %s Intake", label)
		description = fmt.Sprintf("Excellent! You've been very consistent with your %s intake this week.", strings.ToLower(label))
	case cv > cvInconsistentAbove:
		sentiment = models.SentimentNegative
		title = fmt.Sprintf("Inconsistent %s Intake", label)
		description = fmt.Sprintf("Your %s intake varied quite a bit this week. Try to keep it steadier day to day.", strings.ToLower(label))
	default:
		return nil
	}

	return &models.Insight{
		ID:           models.InsightID(metric, models.AnalysisConsistency, sentiment),
		AnalysisType: models.AnalysisConsistency,
		Sentiment:    sentiment,
		Metric:       metric,
		Title:        title,
		Description:  description,
		Color:        metric.Color(),
		Data: models.InsightData{
			CoefficientVariation: &cv,
			Series:               series,
			PeriodDays:           trendWindowDays,
		},
	}
}

// generateInsights runs the classifier over every metric in canonical
// order, trend before consistency. Suppressed signals produce no
// placeholder entries.
func generateInsights(series metricSeries) []models.Insight {
	insights := make([]models.Insight, 0, 2*len(models.Metrics()))
	for _, metric := range models.Metrics() {
		if in := evaluateTrendInsight(metric, series[metric]); in != nil {
			insights = append(insights, *in)
		}
		if in := evaluateConsistencyInsight(metric, series[metric]); in != nil {
			insights = append(insights, *in)
		}
	}
	return insights
}

// relevanceScore weighs an insight for ranking. Consistency magnitudes
// are rescaled by 100 so CV values compete on the same numeric footing
// as percent changes.
func relevanceScore(in models.Insight) float64 {
	var magnitude float64
	switch in.AnalysisType {
	case models.AnalysisTrend:
		if in.Data.ChangePercent != nil {
			magnitude = *in.Data.ChangePercent
		}
	case models.AnalysisConsistency:
		if in.Data.CoefficientVariation != nil {
			magnitude = *in.Data.CoefficientVariation * 100
		}
	}

	typeWeight := 1.0
	if in.Sentiment == models.SentimentNegative {
		typeWeight = weightNegativeSentiment
	} else if in.AnalysisType == models.AnalysisConsistency && in.Sentiment == models.SentimentNegative {
		// Dominated by the branch above and never reached. Kept verbatim:
		// removing it would change the shipped weight table.
		typeWeight = weightNegativeConsistency
	}

	metricWeight := 1.0
	if in.Metric == models.MetricCalories {
		metricWeight = weightCaloriesMetric
	}

	return math.Abs(magnitude) * typeWeight * metricWeight
}

// rankInsights orders candidates by relevance and keeps the top three.
// The sort is stable: ties keep generation order (metric order, trend
// before consistency).
func rankInsights(insights []models.Insight) []models.Insight {
	sort.SliceStable(insights, func(i, j int) bool {
		return relevanceScore(insights[i]) > relevanceScore(insights[j])
	})

	if len(insights) > maxRankedInsights {
		insights = insights[:maxRankedInsights]
	}
	return insights
}

// summarizeMetric reduces one metric's series and target into the
// rounded display summary. Its trend is computed independently of the
// classifier's and may differ from it by rounding only.
func summarizeMetric(series []float64, target float64) models.WeeklyMetricSummary {
	average := math.Round(mean(series))
	return models.WeeklyMetricSummary{
		Series:     series,
		Target:     target,
		Average:    int(average),
		Percentage: int(math.Round(average / target * 100)),
		Trend:      int(math.Round(trendPercent(series))),
	}
}

// buildWeeklySummary reduces all four metrics for charting
func buildWeeklySummary(series metricSeries, targets models.NutrientTargets) *models.WeeklySummary {
	return &models.WeeklySummary{
		Calories: summarizeMetric(series[models.MetricCalories], targets.Calories),
		Protein:  summarizeMetric(series[models.MetricProtein], targets.Protein),
		Carbs:    summarizeMetric(series[models.MetricCarbs], targets.Carbs),
		Fat:      summarizeMetric(series[models.MetricFat], targets.Fat),
	}
}
