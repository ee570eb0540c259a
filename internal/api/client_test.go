package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/chat"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, StaticTokenProvider("secret"), zap.NewNop())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"assets":[],"summary":{}}`))
	})

	_, _, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
}

func TestClient_MissingCredential(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, StaticTokenProvider(""), zap.NewNop())
	_, _, err := client.FetchAssets(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, called, "no request should be issued without a token")
}

func TestClient_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.FetchGoals(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestClient_FetchAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assets", r.URL.Path)
		w.Write([]byte(`{
			"assets": [{"asset_id":"a1","user_id":"u1","asset_type":"appliance","category":"kitchen","purchase_date":"2022-06-15T00:00:00Z","purchase_price":899,"expected_lifespan":10}],
			"summary": {"total_assets":1,"high_risk_count":0,"due_for_maintenance":0,"total_replacement_cost_estimate":950}
		}`))
	})

	assets, summary, err := client.FetchAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "a1", assets[0].AssetID)
	assert.Equal(t, 1, summary.TotalAssets)
	assert.Equal(t, 950.0, summary.TotalReplacementCostEstimate)
}

func TestClient_FetchGoalsWithHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/goals", r.URL.Path)
		w.Write([]byte(`{
			"goals": [{
				"goal_id":"g1","vertical":"money","goal_type":"savings","status":"active",
				"target":{"target_value":10000,"target_date":"2026-08-01T00:00:00Z"},
				"progress":{"current_amount":4000,"percentage_complete":40},
				"created_at":"2025-08-01T00:00:00Z",
				"evaluation_history":[{"date":"2026-01-01T00:00:00Z","status":"on_track"}]
			}]
		}`))
	})

	goals, err := client.FetchGoals(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Len(t, goals[0].EvaluationHistory, 1)
	require.NotNil(t, goals[0].EvaluationHistory[0].Date)
}

func TestClient_FetchInsightsParseError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totally":"different"}`))
	})

	_, err := client.FetchInsights(context.Background())

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestClient_SubmitPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/prompt", r.URL.Path)
		w.Write([]byte(`{"response":"Looking good.","chartable":true,"hasInsights":true}`))
	})

	resp, err := client.SubmitPrompt(context.Background(), "how am I doing?", chat.VerticalContext{ID: "money", Name: "finances"})
	require.NoError(t, err)
	assert.Equal(t, "Looking good.", resp.Response)
	assert.True(t, resp.Chartable)
	assert.True(t, resp.HasInsights)
}

func TestClient_ConnectionStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/connections/healthrecords", r.URL.Path)
		w.Write([]byte(`{"connected":true,"patientData":{"records":3}}`))
	})

	status, err := client.ConnectionStatus(context.Background(), "healthrecords")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.NotEmpty(t, status.PatientData)
}
