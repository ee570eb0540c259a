package api

import (
	"encoding/json"

	"github.com/xaenox/lifeboard/internal/models"
)

// ParseError means an insights response matched none of the accepted
// shapes. Callers decide whether to surface it or treat the list as empty;
// the decoder itself never conflates the two.
type ParseError struct {
	Body string
}

func (e *ParseError) Error() string {
	return "insights response matched no accepted shape"
}

// The insights endpoint has shipped three response envelopes over time:
//
//	{ "body": { "insights": [...] } }
//	{ "insights": [...] }
//	[...]
//
// DecodeInsights tries them in that order and returns a *ParseError when
// none fit.
func DecodeInsights(data []byte) ([]models.Insight, error) {
	var wrapped struct {
		Body *struct {
			Insights []models.Insight `json:"insights"`
		} `json:"body"`
		Insights []models.Insight `json:"insights"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Body != nil && wrapped.Body.Insights != nil {
			return wrapped.Body.Insights, nil
		}
		if wrapped.Insights != nil {
			return wrapped.Insights, nil
		}
	}

	var bare []models.Insight
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	return nil, &ParseError{Body: truncate(string(data), 256)}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
