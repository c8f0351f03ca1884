package service

import (
	"math"
	"strings"
	"testing"

	"github.com/macrolog/backend/internal/models"
)

func constantSeries(v float64) []float64 {
	return []float64{v, v, v, v, v, v, v}
}

func TestEvaluateTrendInsightSignificanceThreshold(t *testing.T) {
	// First-half mean 100, second-half mean 105: trend exactly +5, not significant
	atThreshold := []float64{100, 100, 100, 100, 105, 105, 105}
	if in := evaluateTrendInsight(models.MetricProtein, atThreshold); in != nil {
		t.Errorf("trend of exactly +5 produced an insight: %+v", in)
	}

	// Trend +6 crosses the threshold
	aboveThreshold := []float64{100, 100, 100, 100, 106, 106, 106}
	in := evaluateTrendInsight(models.MetricProtein, aboveThreshold)
	if in == nil {
		t.Fatal("trend of +6 produced no insight")
	}
	if in.AnalysisType != models.AnalysisTrend {
		t.Errorf("analysis type = %q, want %q", in.AnalysisType, models.AnalysisTrend)
	}
	if in.Data.ChangePercent == nil || !almostEqual(*in.Data.ChangePercent, 6) {
		t.Errorf("change percent = %v, want 6", in.Data.ChangePercent)
	}
	if in.Data.PeriodDays != 7 {
		t.Errorf("period days = %d, want 7", in.Data.PeriodDays)
	}
}

func TestTrendSentimentPolarity(t *testing.T) {
	rising := []float64{100, 100, 100, 100, 120, 120, 120}  // +20%
	falling := []float64{120, 120, 120, 120, 96, 96, 96}    // -20%

	tests := []struct {
		name   string
		metric models.Metric
		series []float64
		want   models.Sentiment
	}{
		{"rising calories is bad", models.MetricCalories, rising, models.SentimentNegative},
		{"falling calories is good", models.MetricCalories, falling, models.SentimentPositive},
		{"rising protein is good", models.MetricProtein, rising, models.SentimentPositive},
		{"falling protein is bad", models.MetricProtein, falling, models.SentimentNegative},
		{"rising carbs is good", models.MetricCarbs, rising, models.SentimentPositive},
		{"rising fat is good", models.MetricFat, rising, models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := evaluateTrendInsight(tt.metric, tt.series)
			if in == nil {
				t.Fatal("no insight emitted")
			}
			if in.Sentiment != tt.want {
				t.Errorf("sentiment = %q, want %q", in.Sentiment, tt.want)
			}
		})
	}
}

func TestCalorieReductionInsight(t *testing.T) {
	series := []float64{2200, 2200, 2200, 2200, 1800, 1800, 1800}
	in := evaluateTrendInsight(models.MetricCalories, series)
	if in == nil {
		t.Fatal("no insight emitted")
	}

	if in.Title != "Calorie Reduction" {
		t.Errorf("title = %q, want %q", in.Title, "Calorie Reduction")
	}
	if in.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", in.Sentiment)
	}

	wantChange := (1800.0 - 2200.0) / 2200.0 * 100
	if in.Data.ChangePercent == nil || !almostEqual(*in.Data.ChangePercent, wantChange) {
		t.Errorf("change percent = %v, want %v", in.Data.ChangePercent, wantChange)
	}

	// Description interpolates the rounded absolute percent
	if !strings.Contains(in.Description, "18%") {
		t.Errorf("description %q does not mention the rounded change", in.Description)
	}

	if in.ID != "trend-calories-positive" {
		t.Errorf("id = %q, want deterministic trend-calories-positive", in.ID)
	}
	if in.Color != models.MetricCalories.Color() {
		t.Errorf("color = %q, want metric color %q", in.Color, models.MetricCalories.Color())
	}
}

func TestEvaluateConsistencyInsight(t *testing.T) {
	t.Run("very consistent", func(t *testing.T) {
		in := evaluateConsistencyInsight(models.MetricProtein, constantSeries(150))
		if in == nil {
			t.Fatal("constant series produced no insight")
		}
		if in.Sentiment != models.SentimentPositive {
			t.Errorf("sentiment = %q, want positive", in.Sentiment)
		}
		if in.Data.CoefficientVariation == nil || !almostEqual(*in.Data.CoefficientVariation, 0) {
			t.Errorf("cv = %v, want 0", in.Data.CoefficientVariation)
		}
		if in.Title != "Consistent Protein Intake" {
			t.Errorf("title = %q", in.Title)
		}
	})

	t.Run("neutral band is silent", func(t *testing.T) {
		// mean 100, stdDev ~18.5 -> cv ~0.185, inside [0.15, 0.35]
		series := []float64{80, 80, 80, 100, 120, 120, 120}
		cv := coefficientOfVariation(series)
		if cv < 0.15 || cv > 0.35 {
			t.Fatalf("test series cv = %v, expected inside the neutral band", cv)
		}
		if in := evaluateConsistencyInsight(models.MetricCarbs, series); in != nil {
			t.Errorf("neutral-band series produced an insight: %+v", in)
		}
	})

	t.Run("inconsistent", func(t *testing.T) {
		series := []float64{0, 200, 0, 200, 0, 200, 0}
		cv := coefficientOfVariation(series)
		if cv <= 0.35 {
			t.Fatalf("test series cv = %v, expected above 0.35", cv)
		}
		in := evaluateConsistencyInsight(models.MetricFat, series)
		if in == nil {
			t.Fatal("high-variance series produced no insight")
		}
		if in.Sentiment != models.SentimentNegative {
			t.Errorf("sentiment = %q, want negative", in.Sentiment)
		}
		if in.ID != "consistency-fat-negative" {
			t.Errorf("id = %q", in.ID)
		}
	})
}

func TestGenerateInsightsOrder(t *testing.T) {
	// All metrics constant: no trends, four positive consistency insights
	// in canonical metric order.
	series := metricSeries{
		models.MetricCalories: constantSeries(2000),
		models.MetricProtein:  constantSeries(150),
		models.MetricCarbs:    constantSeries(250),
		models.MetricFat:      constantSeries(65),
	}

	insights := generateInsights(series)
	if len(insights) != 4 {
		t.Fatalf("got %d insights, want 4", len(insights))
	}

	wantOrder := []models.Metric{
		models.MetricCalories,
		models.MetricProtein,
		models.MetricCarbs,
		models.MetricFat,
	}
	for i, want := range wantOrder {
		if insights[i].Metric != want {
			t.Errorf("insights[%d].Metric = %q, want %q", i, insights[i].Metric, want)
		}
		if insights[i].AnalysisType != models.AnalysisConsistency {
			t.Errorf("insights[%d].AnalysisType = %q, want consistency", i, insights[i].AnalysisType)
		}
	}
}

func trendInsightForTest(metric models.Metric, sentiment models.Sentiment, change float64) models.Insight {
	return models.Insight{
		ID:           models.InsightID(metric, models.AnalysisTrend, sentiment),
		AnalysisType: models.AnalysisTrend,
		Sentiment:    sentiment,
		Metric:       metric,
		Data:         models.InsightData{ChangePercent: &change},
	}
}

func consistencyInsightForTest(metric models.Metric, sentiment models.Sentiment, cv float64) models.Insight {
	return models.Insight{
		ID:           models.InsightID(metric, models.AnalysisConsistency, sentiment),
		AnalysisType: models.AnalysisConsistency,
		Sentiment:    sentiment,
		Metric:       metric,
		Data:         models.InsightData{CoefficientVariation: &cv},
	}
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		name    string
		insight models.Insight
		want    float64
	}{
		{
			name:    "positive protein trend has no extra weight",
			insight: trendInsightForTest(models.MetricProtein, models.SentimentPositive, 10),
			want:    10,
		},
		{
			name:    "negative sentiment weighs 1.5",
			insight: trendInsightForTest(models.MetricProtein, models.SentimentNegative, -10),
			want:    15,
		},
		{
			name:    "calories weighs 1.1",
			insight: trendInsightForTest(models.MetricCalories, models.SentimentPositive, -10),
			want:    11,
		},
		{
			name:    "negative calories stacks both weights",
			insight: trendInsightForTest(models.MetricCalories, models.SentimentNegative, 10),
			want:    16.5,
		},
		{
			// CV is rescaled by 100 to compete with percent magnitudes
			name:    "consistency magnitude rescaled",
			insight: consistencyInsightForTest(models.MetricProtein, models.SentimentNegative, 0.4),
			want:    60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevanceScore(tt.insight); !almostEqual(got, tt.want) {
				t.Errorf("relevanceScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankInsightsStableTiebreak(t *testing.T) {
	// Two insights with identical scores must keep generation order
	a := trendInsightForTest(models.MetricProtein, models.SentimentPositive, 10)
	b := trendInsightForTest(models.MetricCarbs, models.SentimentPositive, 10)

	ranked := rankInsights([]models.Insight{a, b})
	if ranked[0].Metric != models.MetricProtein || ranked[1].Metric != models.MetricCarbs {
		t.Errorf("tie broke generation order: got %q, %q", ranked[0].Metric, ranked[1].Metric)
	}
}

func TestRankInsightsCapsAtThree(t *testing.T) {
	insights := []models.Insight{
		trendInsightForTest(models.MetricCalories, models.SentimentNegative, 40),
		trendInsightForTest(models.MetricProtein, models.SentimentNegative, 30),
		trendInsightForTest(models.MetricCarbs, models.SentimentPositive, 20),
		trendInsightForTest(models.MetricFat, models.SentimentPositive, 10),
		consistencyInsightForTest(models.MetricProtein, models.SentimentPositive, 0.05),
	}

	ranked := rankInsights(insights)
	if len(ranked) != 3 {
		t.Fatalf("got %d insights, want 3", len(ranked))
	}

	// Highest score first: 40*1.5*1.1 = 66, then 30*1.5 = 45, then 20
	wantOrder := []models.Metric{models.MetricCalories, models.MetricProtein, models.MetricCarbs}
	for i, want := range wantOrder {
		if ranked[i].Metric != want {
			t.Errorf("ranked[%d].Metric = %q, want %q", i, ranked[i].Metric, want)
		}
	}
}

func TestRankInsightsEmpty(t *testing.T) {
	if got := rankInsights(nil); len(got) != 0 {
		t.Errorf("ranking no candidates returned %d insights", len(got))
	}
}

func TestSummarizeMetric(t *testing.T) {
	series := []float64{2000, 2100, 1900, 2000, 2050, 1950, 2000}
	summary := summarizeMetric(series, 2000)

	if summary.Average != 2000 {
		t.Errorf("average = %d, want 2000", summary.Average)
	}
	if summary.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", summary.Percentage)
	}

	// Trend: first-half mean 2000, second-half mean 2000 -> 0
	if summary.Trend != 0 {
		t.Errorf("trend = %d, want 0", summary.Trend)
	}
	if summary.Target != 2000 {
		t.Errorf("target = %v, want 2000", summary.Target)
	}
}

func TestSummarizeMetricRounding(t *testing.T) {
	series := []float64{2200, 2200, 2200, 2200, 1800, 1800, 1800}
	summary := summarizeMetric(series, 2000)

	wantAvg := int(math.Round(14200.0 / 7.0)) // 2029
	if summary.Average != wantAvg {
		t.Errorf("average = %d, want %d", summary.Average, wantAvg)
	}
	if want := int(math.Round(float64(wantAvg) / 2000 * 100)); summary.Percentage != want {
		t.Errorf("percentage = %d, want %d", summary.Percentage, want)
	}
	if summary.Trend != -18 {
		t.Errorf("trend = %d, want -18", summary.Trend)
	}
}

func TestBuildWeeklySummary(t *testing.T) {
	series := metricSeries{
		models.MetricCalories: constantSeries(2000),
		models.MetricProtein:  constantSeries(75),
		models.MetricCarbs:    constantSeries(250),
		models.MetricFat:      constantSeries(65),
	}

	summary := buildWeeklySummary(series, models.DefaultTargets())

	if summary.Calories.Percentage != 100 {
		t.Errorf("calories percentage = %d, want 100", summary.Calories.Percentage)
	}
	if summary.Protein.Percentage != 50 {
		t.Errorf("protein percentage = %d, want 50", summary.Protein.Percentage)
	}
	if summary.Fat.Average != 65 {
		t.Errorf("fat average = %d, want 65", summary.Fat.Average)
	}
}
