// Package goals normalizes goal evaluation history and classifies goal
// health when no evaluation is available.
package goals

import (
	"time"

	"github.com/xaenox/lifeboard/internal/models"
)

// Resolve attaches a normalized latest_evaluation taken from the last
// element of the goal's evaluation history. The last element is chosen by
// position, not by re-sorting on date: upstream appends chronologically.
// Goals without history are returned unchanged.
func Resolve(goal models.Goal) models.Goal {
	if len(goal.EvaluationHistory) == 0 {
		return goal
	}
	latest := normalize(goal.EvaluationHistory[len(goal.EvaluationHistory)-1])
	goal.LatestEvaluation = &latest
	return goal
}

func normalize(record models.GoalEvaluationRecord) models.GoalEvaluation {
	eval := models.GoalEvaluation{
		Status:              record.Status,
		Pace:                record.Pace,
		Insights:            record.Insights,
		Recommendations:     record.Recommendations,
		ProjectedCompletion: record.ProjectedCompletion,
		MonthlyRequired:     record.MonthlyRequired,
	}
	switch {
	case record.EvaluatedAt != nil:
		eval.EvaluatedAt = *record.EvaluatedAt
	case record.Date != nil:
		eval.EvaluatedAt = *record.Date
	}
	if eval.Pace == "" {
		eval.Pace = models.DefaultPace
	}
	if eval.Insights == nil {
		eval.Insights = []string{}
	}
	if eval.Recommendations == nil {
		eval.Recommendations = []string{}
	}
	return eval
}

// HealthStatus classifies a goal with no latest_evaluation by comparing
// actual progress against the progress expected for the elapsed share of
// the goal window. This is a separate code path from Resolve and the two
// are never blended in one call.
func HealthStatus(goal models.Goal, now time.Time) models.EvaluationStatus {
	totalDays := goal.Target.TargetDate.Sub(goal.CreatedAt).Hours() / 24
	elapsedDays := now.Sub(goal.CreatedAt).Hours() / 24

	var expected float64
	if totalDays > 0 {
		expected = elapsedDays / totalDays * 100
		if expected > 100 {
			expected = 100
		}
	}

	diff := goal.Progress.PercentageComplete - expected
	switch {
	case diff >= 10:
		return models.EvaluationAhead
	case diff >= -5:
		return models.EvaluationOnTrack
	case diff >= -15:
		return models.EvaluationBehind
	default:
		return models.EvaluationAtRisk
	}
}
