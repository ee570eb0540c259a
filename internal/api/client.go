// Package api is the bearer-token REST client for the dashboard backend.
// Credentials come from an injected TokenProvider rather than any ambient
// session singleton, so the computation core stays testable offline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/chat"
	"github.com/xaenox/lifeboard/internal/models"
)

// ErrMissingCredential means no auth token was available when a fetch was
// attempted. It is surfaced, never retried automatically.
var ErrMissingCredential = errors.New("no auth token available")

// StatusError carries a non-success HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %s", e.Status)
}

// TokenProvider yields the bearer token attached to each request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider serves a fixed token, e.g. from configuration.
type StaticTokenProvider string

func (p StaticTokenProvider) Token(context.Context) (string, error) {
	if p == "" {
		return "", ErrMissingCredential
	}
	return string(p), nil
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

type assetsResponse struct {
	Assets  []models.Asset       `json:"assets"`
	Summary models.AssetsSummary `json:"summary"`
}

// FetchAssets returns the user's assets with the backend-computed summary.
func (c *Client) FetchAssets(ctx context.Context) ([]models.Asset, models.AssetsSummary, error) {
	var resp assetsResponse
	if err := c.get(ctx, "/api/assets", &resp); err != nil {
		return nil, models.AssetsSummary{}, fmt.Errorf("fetch assets: %w", err)
	}
	return resp.Assets, resp.Summary, nil
}

type goalsResponse struct {
	Goals []models.Goal `json:"goals"`
}

// FetchGoals returns the user's goals, each possibly carrying its
// evaluation history.
func (c *Client) FetchGoals(ctx context.Context) ([]models.Goal, error) {
	var resp goalsResponse
	if err := c.get(ctx, "/api/goals", &resp); err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	return resp.Goals, nil
}

// FetchInsights returns the user's insights. A response that matches none
// of the accepted shapes comes back as a *ParseError so callers can
// distinguish "zero insights" from "unparseable response".
func (c *Client) FetchInsights(ctx context.Context) ([]models.Insight, error) {
	body, err := c.getRaw(ctx, "/api/insights")
	if err != nil {
		return nil, fmt.Errorf("fetch insights: %w", err)
	}
	return DecodeInsights(body)
}

type promptRequest struct {
	Message string           `json:"message"`
	Context chat.ChatContext `json:"context,omitempty"`
}

// SubmitPrompt posts a chat message with its optional context and returns
// the assistant response.
func (c *Client) SubmitPrompt(ctx context.Context, message string, chatCtx chat.ChatContext) (models.PromptResponse, error) {
	var resp models.PromptResponse
	if err := c.post(ctx, "/api/prompt", promptRequest{Message: message, Context: chatCtx}, &resp); err != nil {
		return models.PromptResponse{}, fmt.Errorf("submit prompt: %w", err)
	}
	return resp, nil
}

// Respond makes the backend client usable wherever an assistant responder
// is expected.
func (c *Client) Respond(ctx context.Context, message string, chatCtx chat.ChatContext) (models.PromptResponse, error) {
	return c.SubmitPrompt(ctx, message, chatCtx)
}

// ConnectionStatus reports whether an external record link (e.g. a health
// record provider) is connected.
func (c *Client) ConnectionStatus(ctx context.Context, provider string) (models.ConnectionStatus, error) {
	var resp models.ConnectionStatus
	if err := c.get(ctx, "/api/connections/"+provider, &resp); err != nil {
		return models.ConnectionStatus{}, fmt.Errorf("connection status: %w", err)
	}
	return resp, nil
}

// Connect initiates (or refreshes) an external record link and returns the
// resulting status.
func (c *Client) Connect(ctx context.Context, provider string) (models.ConnectionStatus, error) {
	var resp models.ConnectionStatus
	if err := c.post(ctx, "/api/connections/"+provider, struct{}{}, &resp); err != nil {
		return models.ConnectionStatus{}, fmt.Errorf("connect %s: %w", provider, err)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	body, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend request failed",
			zap.String("path", req.URL.Path),
			zap.String("status", resp.Status))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return io.ReadAll(resp.Body)
}
