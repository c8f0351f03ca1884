package service

import "math"

// trendWindowDays is the fixed analysis window. Every series handled by
// the insight engine covers exactly one trailing week, oldest day first.
const trendWindowDays = 7

// mean returns the arithmetic mean. Callers guarantee non-empty input;
// series length is fixed at trendWindowDays throughout the engine.
func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation (divide by N).
func stdDev(values []float64) float64 {
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// coefficientOfVariation returns stdDev/mean. A zero mean returns 0:
// a user logging zero of a nutrient all week is perfectly consistent,
// not undefined.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stdDev(values) / m
}

// trendPercent compares the mean of days 0-2 against the mean of days
// 4-6 and returns the percent change. The middle day (index 3) belongs
// to neither half; this split is load-bearing for ranking output and
// must not be "fixed" to a clean 3-vs-4 split.
//
// Returns 0 when the series is not exactly trendWindowDays long, or
// when the first-half mean is 0 (no baseline to compare against).
func trendPercent(values []float64) float64 {
	if len(values) != trendWindowDays {
		return 0
	}

	firstHalf := mean(values[0:3])
	secondHalf := mean(values[4:7])

	if firstHalf == 0 {
		return 0
	}

	return ((secondHalf - firstHalf) / firstHalf) * 100
}
