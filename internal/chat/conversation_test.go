package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/lifeboard/internal/models"
)

var now = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func chartableReply() models.PromptResponse {
	return models.PromptResponse{Response: "Here's the picture.", Chartable: true, HasInsights: true}
}

func plainReply() models.PromptResponse {
	return models.PromptResponse{Response: "Just an answer."}
}

func TestConversation_DefaultTabIsAnswer(t *testing.T) {
	conv := NewConversation("u1", VerticalContext{ID: "money", Name: "finances"}, now)
	idx := conv.AppendAssistant(chartableReply(), now)

	assert.Equal(t, models.TabAnswer, conv.SelectedTab(idx))
}

func TestConversation_SelectTabRequiresCapability(t *testing.T) {
	conv := NewConversation("u1", VerticalContext{ID: "money", Name: "finances"}, now)
	idx := conv.AppendAssistant(plainReply(), now)

	err := conv.SelectTab(idx, models.TabDashboard)
	assert.ErrorIs(t, err, ErrTabUnavailable)
	assert.Equal(t, models.TabAnswer, conv.SelectedTab(idx))

	// Answer is always selectable.
	assert.NoError(t, conv.SelectTab(idx, models.TabAnswer))
}

func TestConversation_SelectTabUnknownIndex(t *testing.T) {
	conv := NewConversation("u1", VerticalContext{ID: "money", Name: "finances"}, now)

	err := conv.SelectTab(3, models.TabAnswer)
	assert.ErrorIs(t, err, ErrNoSuchMessage)
}

func TestConversation_TabStickiness(t *testing.T) {
	conv := NewConversation("u1", VerticalContext{ID: "money", Name: "finances"}, now)

	for i := 0; i < 4; i++ {
		conv.AppendAssistant(chartableReply(), now)
	}

	// Selecting dashboard for message 3 must not alter message 1.
	require.NoError(t, conv.SelectTab(3, models.TabDashboard))
	assert.Equal(t, models.TabAnswer, conv.SelectedTab(1))
	assert.Equal(t, models.TabDashboard, conv.SelectedTab(3))

	// Appending a new message must not reset the earlier pick.
	conv.AppendAssistant(chartableReply(), now)
	assert.Equal(t, models.TabDashboard, conv.SelectedTab(3))
	assert.Equal(t, models.TabAnswer, conv.SelectedTab(4))
}

func TestConversation_MessageIndices(t *testing.T) {
	conv := NewConversation("u1", AssetContext{AssetName: "fridge"}, now)

	first := conv.AppendAssistant(models.PromptResponse{Response: conv.Greeting()}, now)
	second := conv.AppendUser("how is it doing?", now)
	third := conv.AppendAssistant(plainReply(), now)

	assert.Equal(t, []int{0, 1, 2}, []int{first, second, third})

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
	for i, msg := range msgs {
		assert.Equal(t, i, msg.Index)
		assert.Equal(t, conv.Session().ID, msg.SessionID)
		assert.NotEmpty(t, msg.ID)
	}
}

func TestTabSelectable(t *testing.T) {
	msg := models.ChatMessage{HasInsights: true, HasSources: true}

	assert.True(t, TabSelectable(msg, models.TabAnswer))
	assert.True(t, TabSelectable(msg, models.TabInsights))
	assert.True(t, TabSelectable(msg, models.TabSources))
	assert.False(t, TabSelectable(msg, models.TabDashboard))
	assert.False(t, TabSelectable(msg, models.TabImages))
	assert.False(t, TabSelectable(msg, models.Tab("bogus")))
}
