// Package insights buckets backend insight records per vertical with type,
// priority and novelty breakdowns.
package insights

import "github.com/xaenox/lifeboard/internal/models"

// NewAggregation returns a well-formed zero-valued bucket for a vertical.
// Which verticals exist is policy owned by the caller, not this package;
// callers materialize buckets for their canonical vertical set so a
// vertical with no insights never needs special-casing.
func NewAggregation(vertical string) *models.InsightAggregation {
	return &models.InsightAggregation{
		Vertical: vertical,
		Items:    []models.Insight{},
	}
}

// Aggregate groups a flat insight list by vertical in a single pass. The
// result is stable under reordering of the input. The sum of bucket
// TotalCounts always equals len(insights).
func Aggregate(insights []models.Insight) map[string]*models.InsightAggregation {
	buckets := make(map[string]*models.InsightAggregation)

	for _, insight := range insights {
		bucket, ok := buckets[insight.Vertical]
		if !ok {
			bucket = NewAggregation(insight.Vertical)
			buckets[insight.Vertical] = bucket
		}

		bucket.TotalCount++
		if insight.IsForecast() {
			bucket.TypeBreakdown.Forecasts++
			countPriority(&bucket.ForecastPriorityBreakdown, insight.Priority)
		} else {
			bucket.TypeBreakdown.Insights++
			countPriority(&bucket.InsightPriorityBreakdown, insight.Priority)
		}
		countPriority(&bucket.PriorityBreakdown, insight.Priority)

		if insight.Viewed {
			bucket.ViewedCount++
		} else {
			bucket.NewCount++
		}
		bucket.Items = append(bucket.Items, insight)
	}

	return buckets
}

func countPriority(breakdown *models.PriorityBreakdown, priority models.Priority) {
	switch priority {
	case models.PriorityHigh:
		breakdown.High++
	case models.PriorityMedium:
		breakdown.Medium++
	case models.PriorityLow:
		breakdown.Low++
	}
}
