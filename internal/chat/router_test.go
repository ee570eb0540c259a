package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreeting_Dispatch(t *testing.T) {
	assert.Contains(t, Greeting(VerticalContext{ID: "money", Name: "finances"}), "finances")

	greeting := Greeting(InsightContext{Title: "Dining out is up 40%", Summary: "You spent more on restaurants."})
	assert.Contains(t, greeting, "Dining out is up 40%")
	assert.Contains(t, greeting, "You spent more on restaurants.")

	assert.Contains(t, Greeting(AssetContext{AssetName: "washing machine"}), "washing machine")
}

func TestQuickPrompts_VerticalTable(t *testing.T) {
	for _, id := range []string{"money", "healthcare", "life-essentials", "education"} {
		prompts := QuickPrompts(VerticalContext{ID: id})
		assert.Lenf(t, prompts, 4, "vertical %s", id)
	}
}

func TestQuickPrompts_UnknownVerticalEmpty(t *testing.T) {
	prompts := QuickPrompts(VerticalContext{ID: "astrology"})
	assert.Empty(t, prompts)
}

func TestQuickPrompts_InsightTypeTable(t *testing.T) {
	for _, insightType := range []string{"spending", "budget", "savings", "forecast", "risk", "goal"} {
		prompts := QuickPrompts(InsightContext{InsightType: insightType})
		require.Lenf(t, prompts, 4, "insight_type %s", insightType)
		assert.NotEqual(t, defaultInsightPrompts, prompts)
	}
}

func TestQuickPrompts_UnknownInsightTypeDefaults(t *testing.T) {
	assert.Equal(t, defaultInsightPrompts, QuickPrompts(InsightContext{InsightType: "weather"}))
	assert.Equal(t, defaultInsightPrompts, QuickPrompts(InsightContext{}))
}

func TestQuickPrompts_AssetReplacementBranch(t *testing.T) {
	prompts := QuickPrompts(AssetContext{RiskScore: 80, RecommendReplacement: true})

	require.Equal(t, assetReplacementPrompts, prompts)
	for _, p := range prompts {
		assert.NotContains(t, assetMaintenancePrompts, p)
		assert.NotContains(t, assetGeneralPrompts, p)
	}
}

func TestQuickPrompts_AssetBranchSelection(t *testing.T) {
	tests := []struct {
		name      string
		risk      float64
		recommend bool
		want      []string
	}{
		{"risk at replacement threshold", 75, false, assetReplacementPrompts},
		{"recommendation overrides low risk", 30, true, assetReplacementPrompts},
		{"risk just under replacement", 74, false, assetMaintenancePrompts},
		{"risk at maintenance threshold", 50, false, assetMaintenancePrompts},
		{"risk just under maintenance", 49, false, assetGeneralPrompts},
		{"healthy asset", 10, false, assetGeneralPrompts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts := QuickPrompts(AssetContext{RiskScore: tt.risk, RecommendReplacement: tt.recommend})
			assert.Equal(t, tt.want, prompts)
		})
	}
}

func TestQuickPrompts_ReturnsCopy(t *testing.T) {
	prompts := QuickPrompts(VerticalContext{ID: "money"})
	prompts[0] = "mutated"

	assert.NotEqual(t, "mutated", QuickPrompts(VerticalContext{ID: "money"})[0])
}
