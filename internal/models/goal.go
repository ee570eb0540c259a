package models

import "time"

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalArchived  GoalStatus = "archived"
	GoalFailed    GoalStatus = "failed"
)

type EvaluationStatus string

const (
	EvaluationOnTrack  EvaluationStatus = "on_track"
	EvaluationAhead    EvaluationStatus = "ahead"
	EvaluationBehind   EvaluationStatus = "behind"
	EvaluationAtRisk   EvaluationStatus = "at_risk"
	EvaluationAchieved EvaluationStatus = "achieved"
	EvaluationOffTrack EvaluationStatus = "off_track"
)

// DefaultPace is used when an evaluation snapshot omits its pace.
const DefaultPace = "adequate"

type Goal struct {
	GoalID            string                 `json:"goal_id"`
	Vertical          string                 `json:"vertical"`
	GoalType          string                 `json:"goal_type"`
	Status            GoalStatus             `json:"status"`
	Target            GoalTarget             `json:"target"`
	Progress          GoalProgress           `json:"progress"`
	CreatedAt         time.Time              `json:"created_at"`
	EvaluationHistory []GoalEvaluationRecord `json:"evaluation_history,omitempty"`
	LatestEvaluation  *GoalEvaluation        `json:"latest_evaluation,omitempty"`
}

type GoalTarget struct {
	TargetValue float64   `json:"target_value"`
	TargetDate  time.Time `json:"target_date"`
}

type GoalProgress struct {
	CurrentAmount         float64  `json:"current_amount"`
	PercentageComplete    float64  `json:"percentage_complete"`
	CurrentPeriodSpending *float64 `json:"current_period_spending,omitempty"`
}

// GoalEvaluationRecord is one raw snapshot from the backend's
// evaluation_history. Older snapshots carry "date", newer ones
// "evaluated_at"; normalization picks whichever is present.
type GoalEvaluationRecord struct {
	EvaluatedAt         *time.Time       `json:"evaluated_at,omitempty"`
	Date                *time.Time       `json:"date,omitempty"`
	Status              EvaluationStatus `json:"status"`
	Pace                string           `json:"pace,omitempty"`
	Insights            []string         `json:"insights,omitempty"`
	Recommendations     []string         `json:"recommendations,omitempty"`
	ProjectedCompletion *time.Time       `json:"projected_completion,omitempty"`
	MonthlyRequired     *float64         `json:"monthly_required,omitempty"`
}

// GoalEvaluation is the normalized form attached as latest_evaluation.
type GoalEvaluation struct {
	EvaluatedAt         time.Time        `json:"evaluated_at"`
	Status              EvaluationStatus `json:"status"`
	Pace                string           `json:"pace"`
	Insights            []string         `json:"insights"`
	Recommendations     []string         `json:"recommendations"`
	ProjectedCompletion *time.Time       `json:"projected_completion,omitempty"`
	MonthlyRequired     *float64         `json:"monthly_required,omitempty"`
}
