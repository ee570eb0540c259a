package models

import "encoding/json"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// InsightType values double as the forecast discriminator and the sub-type
// consulted for quick-prompt selection.
const (
	InsightTypeForecast = "forecast"
	InsightTypeSpending = "spending"
	InsightTypeBudget   = "budget"
	InsightTypeSavings  = "savings"
	InsightTypeRisk     = "risk"
	InsightTypeGoal     = "goal"
)

// Insight is supplied verbatim by the backend; the engine groups it but
// never mutates it. Viewed is the caller-visible seen marker set before
// aggregation.
type Insight struct {
	InsightID     string          `json:"insight_id"`
	Vertical      string          `json:"vertical"`
	InsightType   string          `json:"insight_type"`
	Priority      Priority        `json:"priority"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	GoalContext   string          `json:"goal_context,omitempty"`
	Visualization json.RawMessage `json:"visualization,omitempty"`
	Viewed        bool            `json:"viewed,omitempty"`
}

// IsForecast reports whether the record is a forecast rather than an
// observed-pattern insight.
func (i Insight) IsForecast() bool {
	return i.InsightType == InsightTypeForecast
}

type TypeBreakdown struct {
	Insights  int `json:"insights"`
	Forecasts int `json:"forecasts"`
}

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// InsightAggregation is the derived per-vertical bucket. A vertical with no
// insights is still representable as a well-formed zero-valued aggregation.
type InsightAggregation struct {
	Vertical                  string            `json:"vertical"`
	TotalCount                int               `json:"total_count"`
	TypeBreakdown             TypeBreakdown     `json:"type_breakdown"`
	PriorityBreakdown         PriorityBreakdown `json:"priority_breakdown"`
	InsightPriorityBreakdown  PriorityBreakdown `json:"insight_priority_breakdown"`
	ForecastPriorityBreakdown PriorityBreakdown `json:"forecast_priority_breakdown"`
	NewCount                  int               `json:"new_count"`
	ViewedCount               int               `json:"viewed_count"`
	Items                     []Insight         `json:"items"`
}
