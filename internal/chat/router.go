package chat

import "fmt"

const (
	assetReplacementThreshold = 75
	assetMaintenanceThreshold = 50
)

// verticalPrompts is keyed by vertical id. Unknown ids get no suggestions.
var verticalPrompts = map[string][]string{
	"money": {
		"How is my spending trending this month?",
		"Am I on track with my savings goals?",
		"Where can I cut back without much pain?",
		"What bills are coming up soon?",
	},
	"healthcare": {
		"Summarize my recent health activity",
		"Are there any checkups I should schedule?",
		"How are my health-related goals doing?",
		"What do my connected health records show?",
	},
	"life-essentials": {
		"Which of my assets need attention?",
		"What maintenance is coming up?",
		"Should I be planning any replacements?",
		"How much have I spent on upkeep this year?",
	},
	"education": {
		"How is my learning plan progressing?",
		"What should I focus on studying next?",
		"Am I keeping up with my course goals?",
		"Suggest resources for my current topics",
	},
}

// insightPrompts is keyed by insight_type sub-type.
var insightPrompts = map[string][]string{
	"spending": {
		"Break this spending pattern down for me",
		"How does this compare to previous months?",
		"What's driving this change?",
		"How can I reduce this category?",
	},
	"budget": {
		"How close am I to my budget limit?",
		"Which categories are over budget?",
		"Suggest a budget adjustment",
		"What happens if this trend continues?",
	},
	"savings": {
		"How can I save more each month?",
		"Is my savings rate healthy?",
		"Where should these savings go?",
		"Project my savings a year out",
	},
	"forecast": {
		"How confident is this projection?",
		"What assumptions is this based on?",
		"What would change this forecast?",
		"Show me the best and worst case",
	},
	"risk": {
		"How serious is this risk?",
		"What should I do about it first?",
		"What happens if I ignore this?",
		"Has this risk changed recently?",
	},
	"goal": {
		"Why am I ahead or behind on this goal?",
		"What would get me back on track?",
		"Should I adjust the target?",
		"How does this goal affect my others?",
	},
}

// defaultInsightPrompts covers unknown or missing sub-types.
var defaultInsightPrompts = []string{
	"Tell me more about this",
	"Why does this matter?",
	"What should I do next?",
	"Show me the underlying data",
}

var assetReplacementPrompts = []string{
	"Should I replace this now or can it wait?",
	"What would a replacement cost me?",
	"How do I get the most out of it until then?",
	"What models would you recommend?",
}

var assetMaintenancePrompts = []string{
	"What maintenance does it need right now?",
	"How much should that maintenance cost?",
	"Can I do any of it myself?",
	"How do I find a good service provider?",
}

var assetGeneralPrompts = []string{
	"How is this asset holding up overall?",
	"When should I plan its next service?",
	"Is it still under warranty?",
	"How can I extend its useful life?",
}

// Greeting produces the canned opener for a session's context.
func Greeting(ctx ChatContext) string {
	switch c := ctx.(type) {
	case VerticalContext:
		return fmt.Sprintf("Hi! I'm your %s assistant. Ask me anything about this area of your life, or pick a suggestion below.", c.Name)
	case InsightContext:
		return fmt.Sprintf("Let's dig into \"%s\". %s What would you like to know?", c.Title, c.Summary)
	case AssetContext:
		return fmt.Sprintf("Let's talk about your %s. I have its latest condition and maintenance picture in front of me.", c.AssetName)
	}
	return ""
}

// QuickPrompts returns the ranked suggestion list for a session's context.
func QuickPrompts(ctx ChatContext) []string {
	switch c := ctx.(type) {
	case VerticalContext:
		return clone(verticalPrompts[c.ID])
	case InsightContext:
		if prompts, ok := insightPrompts[c.InsightType]; ok {
			return clone(prompts)
		}
		return clone(defaultInsightPrompts)
	case AssetContext:
		return clone(assetPrompts(c))
	}
	return nil
}

// assetPrompts branches on severity. Exactly one branch fires; the
// replacement check runs first.
func assetPrompts(c AssetContext) []string {
	switch {
	case c.RiskScore >= assetReplacementThreshold || c.RecommendReplacement:
		return assetReplacementPrompts
	case c.RiskScore >= assetMaintenanceThreshold:
		return assetMaintenancePrompts
	default:
		return assetGeneralPrompts
	}
}

func clone(prompts []string) []string {
	if prompts == nil {
		return []string{}
	}
	out := make([]string, len(prompts))
	copy(out, prompts)
	return out
}
