package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xaenox/lifeboard/internal/models"
)

var (
	ErrNoSuchMessage  = errors.New("no message at index")
	ErrTabUnavailable = errors.New("tab not available for message")
)

// Conversation owns one chat session: its immutable context, the message
// log and the per-message tab selections. Selections are keyed by message
// index and are sticky: appending messages never resets an earlier pick,
// and nothing transitions a tab except an explicit Select call.
type Conversation struct {
	session  models.Session
	context  ChatContext
	messages []models.ChatMessage
	tabs     map[int]models.Tab
}

func NewConversation(userID string, ctx ChatContext, now time.Time) *Conversation {
	return &Conversation{
		session: models.Session{
			ID:         uuid.New().String(),
			UserID:     userID,
			CreatedAt:  now,
			LastUsedAt: now,
		},
		context: ctx,
		tabs:    make(map[int]models.Tab),
	}
}

func (c *Conversation) Session() models.Session { return c.session }
func (c *Conversation) Context() ChatContext    { return c.context }

// Greeting returns the opener for this conversation's context.
func (c *Conversation) Greeting() string { return Greeting(c.context) }

// QuickPrompts returns the suggestion list for this conversation's context.
func (c *Conversation) QuickPrompts() []string { return QuickPrompts(c.context) }

// AppendUser appends a user message and returns its index.
func (c *Conversation) AppendUser(content string, now time.Time) int {
	return c.append(models.ChatMessage{
		Role:    "user",
		Content: content,
	}, now)
}

// AppendAssistant appends an assistant message built from a prompt
// response, carrying the capability flags that gate tab selection.
func (c *Conversation) AppendAssistant(resp models.PromptResponse, now time.Time) int {
	return c.append(models.ChatMessage{
		Role:        "assistant",
		Content:     resp.Response,
		Chartable:   resp.Chartable,
		HasInsights: resp.HasInsights,
		HasImages:   resp.HasImages,
		HasSources:  resp.HasSources,
	}, now)
}

func (c *Conversation) append(msg models.ChatMessage, now time.Time) int {
	msg.ID = uuid.New().String()
	msg.SessionID = c.session.ID
	msg.Index = len(c.messages)
	msg.CreatedAt = now
	c.messages = append(c.messages, msg)
	c.session.LastUsedAt = now
	return msg.Index
}

func (c *Conversation) Messages() []models.ChatMessage { return c.messages }

// SelectedTab returns the tab state for a message. Every message starts on
// the answer tab.
func (c *Conversation) SelectedTab(index int) models.Tab {
	if tab, ok := c.tabs[index]; ok {
		return tab
	}
	return models.TabAnswer
}

// SelectTab records an explicit user selection for one message's tab
// control. The selection is rejected when the message does not carry the
// matching capability; answer is always selectable.
func (c *Conversation) SelectTab(index int, tab models.Tab) error {
	if index < 0 || index >= len(c.messages) {
		return fmt.Errorf("%w: %d", ErrNoSuchMessage, index)
	}
	if !TabSelectable(c.messages[index], tab) {
		return fmt.Errorf("%w: %s", ErrTabUnavailable, tab)
	}
	c.tabs[index] = tab
	return nil
}

// TabSelectable reports whether a message offers the given tab.
func TabSelectable(msg models.ChatMessage, tab models.Tab) bool {
	switch tab {
	case models.TabAnswer:
		return true
	case models.TabInsights:
		return msg.HasInsights
	case models.TabDashboard:
		return msg.Chartable
	case models.TabImages:
		return msg.HasImages
	case models.TabSources:
		return msg.HasSources
	default:
		return false
	}
}
