package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/chat"
	"github.com/xaenox/lifeboard/internal/models"
)

type structuredReply struct {
	Response    string          `json:"response"`
	Chartable   bool            `json:"chartable"`
	ChartData   json.RawMessage `json:"chart_data"`
	HasInsights bool            `json:"has_insights"`
	Insights    json.RawMessage `json:"insights"`
	HasSources  bool            `json:"has_sources"`
	Sources     json.RawMessage `json:"sources"`
}

type OpenAIResponder struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIResponder(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIResponder {
	return &OpenAIResponder{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (r *OpenAIResponder) Respond(ctx context.Context, message string, chatCtx chat.ChatContext) (models.PromptResponse, error) {
	prompt := fmt.Sprintf(`You are a personal life-dashboard assistant. %s

Answer the user's question. Return the response as a JSON object with this structure:
{
    "response": "your_answer",
    "chartable": false,
    "chart_data": null,
    "has_insights": false,
    "insights": null,
    "has_sources": false,
    "sources": null
}

Set chartable/has_insights/has_sources only when you include the matching data.

Question: %s`, describeContext(chatCtx), message)

	resp, err := r.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: r.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   r.maxTokens,
			Temperature: float32(r.temperature),
		},
	)
	if err != nil {
		return models.PromptResponse{}, fmt.Errorf("assistant completion: %w", err)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	var reply structuredReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		// Degrade to a plain-text answer with no capabilities.
		r.logger.Warn("failed to parse assistant reply",
			zap.Error(err),
			zap.String("response", raw))
		return models.PromptResponse{Response: raw}, nil
	}

	return models.PromptResponse{
		Response:     reply.Response,
		Chartable:    reply.Chartable,
		ChartData:    reply.ChartData,
		HasInsights:  reply.HasInsights,
		InsightsData: reply.Insights,
		HasSources:   reply.HasSources,
		SourcesData:  reply.Sources,
	}, nil
}

func describeContext(ctx chat.ChatContext) string {
	switch c := ctx.(type) {
	case chat.VerticalContext:
		return fmt.Sprintf("The user is asking about their %s.", c.Name)
	case chat.InsightContext:
		return fmt.Sprintf("The user is asking about the %s insight %q: %s", c.Vertical, c.Title, c.Summary)
	case chat.AssetContext:
		return fmt.Sprintf("The user is asking about their %s (%s), age %d years of an expected %.0f, risk score %.0f, condition %q.",
			c.AssetName, c.AssetType, c.AgeYears, c.LifespanYears, c.RiskScore, c.Condition)
	}
	return "The user has no specific context selected."
}
