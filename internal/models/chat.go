package models

import (
	"encoding/json"
	"time"
)

// Tab is the visible result view for one assistant message.
type Tab string

const (
	TabAnswer    Tab = "answer"
	TabInsights  Tab = "insights"
	TabDashboard Tab = "dashboard"
	TabImages    Tab = "images"
	TabSources   Tab = "sources"
)

// Session represents one chat session with its pinned context.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// ChatMessage is one message within a session. Assistant messages carry the
// capability flags that gate which result tabs are selectable.
type ChatMessage struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Index       int       `json:"index"`
	Role        string    `json:"role"` // user | assistant
	Content     string    `json:"content"`
	Chartable   bool      `json:"chartable,omitempty"`
	HasInsights bool      `json:"has_insights,omitempty"`
	HasImages   bool      `json:"has_images,omitempty"`
	HasSources  bool      `json:"has_sources,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PromptResponse is the assistant's answer to a submitted prompt, with the
// optional payloads behind each capability flag.
type PromptResponse struct {
	Response     string          `json:"response"`
	Chartable    bool            `json:"chartable,omitempty"`
	ChartData    json.RawMessage `json:"chartData,omitempty"`
	HasInsights  bool            `json:"hasInsights,omitempty"`
	InsightsData json.RawMessage `json:"insightsData,omitempty"`
	HasImages    bool            `json:"hasImages,omitempty"`
	ImagesData   json.RawMessage `json:"imagesData,omitempty"`
	HasSources   bool            `json:"hasSources,omitempty"`
	SourcesData  json.RawMessage `json:"sourcesData,omitempty"`
}

// ConnectionStatus reports an external record link, e.g. a third-party
// health record provider.
type ConnectionStatus struct {
	Connected   bool            `json:"connected"`
	PatientData json.RawMessage `json:"patientData,omitempty"`
}
