// Package chat routes conversational context: greetings, quick-prompt
// suggestions and the per-message result-tab state machine.
package chat

import "encoding/json"

// ChatContext is the context a chat session is opened with. It is a sealed
// sum type with exactly three variants; the compiler forces every consumer
// through the marker method, so adding a fourth variant means revisiting
// each type switch rather than silently falling through.
type ChatContext interface {
	chatContext()
}

// VerticalContext opens a session scoped to a whole life domain.
type VerticalContext struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gradient string `json:"gradient,omitempty"`
}

// InsightContext opens a session about one insight or forecast record.
type InsightContext struct {
	Vertical      string          `json:"vertical"`
	InsightID     string          `json:"insight_id"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Priority      string          `json:"priority"`
	InsightType   string          `json:"insight_type,omitempty"`
	Visualization json.RawMessage `json:"visualization,omitempty"`
}

// AssetContext opens a session about one asset, carrying the slice of its
// latest evaluation the router branches on.
type AssetContext struct {
	AssetID              string  `json:"asset_id"`
	AssetName            string  `json:"asset_name"`
	AssetType            string  `json:"asset_type"`
	RiskScore            float64 `json:"risk_score"`
	Condition            string  `json:"condition,omitempty"`
	AgeYears             int     `json:"age_years"`
	LifespanYears        float64 `json:"lifespan_years"`
	ReplacementCost      float64 `json:"replacement_cost,omitempty"`
	MaintenanceStatus    string  `json:"maintenance_status,omitempty"`
	RecommendReplacement bool    `json:"recommend_replacement,omitempty"`
}

func (VerticalContext) chatContext() {}
func (InsightContext) chatContext()  {}
func (AssetContext) chatContext()    {}
