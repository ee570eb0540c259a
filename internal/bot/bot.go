// Package bot bridges Telegram to the dashboard: chat messages go to the
// assistant responder, commands open vertical-scoped sessions, and
// attention digests are pushed to the configured chat.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/chat"
	"github.com/xaenox/lifeboard/internal/dashboard"
	"github.com/xaenox/lifeboard/internal/models"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	chats     *chat.Service
	dashboard *dashboard.Service
	logger    *zap.Logger

	// One open session per Telegram chat.
	sessions map[int64]string
}

func New(token string, chats *chat.Service, dash *dashboard.Service, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:       api,
		chats:     chats,
		dashboard: dash,
		logger:    logger,
		sessions:  make(map[int64]string),
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	sessionID, ok := b.sessions[message.Chat.ID]
	if !ok {
		conv, err := b.openSession(ctx, message.Chat.ID, defaultContext())
		if err != nil {
			b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't start a session. Please try again.")
			return
		}
		sessionID = conv.Session().ID
	}

	resp, _, err := b.chats.Submit(ctx, sessionID, message.Text)
	if err != nil {
		b.logger.Error("Failed to submit prompt",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.Int64("chat_id", message.Chat.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't answer that. Please try again.")
		return
	}

	text := resp.Response
	if extras := availableTabs(resp); extras != "" {
		text += "\n\n" + extras
	}
	b.sendMessage(message.Chat.ID, text)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "money", "healthcare", "essentials", "education":
		b.handleVertical(ctx, message)
	case "status":
		b.handleStatus(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome to Lifeboard! 🧭
I'm the chat side of your life dashboard: money, healthcare, life essentials and education.

Pick an area with /money, /healthcare, /essentials or /education, or just ask me anything.
Use /help to see all available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/money - Chat about your finances
/healthcare - Chat about your health
/essentials - Chat about your assets and upkeep
/education - Chat about your learning
/status - Show the latest dashboard summary

Anything else you send goes straight to the assistant.`

	b.sendMessage(message.Chat.ID, help)
}

var verticalCommands = map[string]chat.VerticalContext{
	"money":      {ID: "money", Name: "finances"},
	"healthcare": {ID: "healthcare", Name: "health"},
	"essentials": {ID: "life-essentials", Name: "life essentials"},
	"education":  {ID: "education", Name: "learning"},
}

func (b *Bot) handleVertical(ctx context.Context, message *tgbotapi.Message) {
	vctx := verticalCommands[message.Command()]
	conv, err := b.openSession(ctx, message.Chat.ID, vctx)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't start that session. Please try again.")
		return
	}

	text := conv.Greeting()
	if prompts := conv.QuickPrompts(); len(prompts) > 0 {
		text += "\n\nSome things you could ask:\n"
		for _, prompt := range prompts {
			text += "  • " + prompt + "\n"
		}
	}
	b.sendMessage(message.Chat.ID, strings.TrimRight(text, "\n"))
}

func (b *Bot) handleStatus(message *tgbotapi.Message) {
	snapshot := b.dashboard.Snapshot()

	var attention int
	for _, view := range snapshot.Assets {
		if view.Display.NeedsAttention {
			attention++
		}
	}
	var newInsights int
	for _, agg := range snapshot.Insights {
		newInsights += agg.NewCount
	}

	text := fmt.Sprintf(`Dashboard as of %s:
Assets: %d tracked, %d needing attention
Goals: %d tracked
Insights: %d new across %d areas`,
		snapshot.RefreshedAt.Format("Jan 2 15:04"),
		len(snapshot.Assets), attention,
		len(snapshot.Goals),
		newInsights, len(snapshot.Insights))

	b.sendMessage(message.Chat.ID, text)
}

func (b *Bot) openSession(ctx context.Context, chatID int64, chatCtx chat.ChatContext) (*chat.Conversation, error) {
	conv, err := b.chats.Open(ctx, fmt.Sprintf("telegram:%d", chatID), chatCtx)
	if err != nil {
		b.logger.Error("Failed to open session",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		return nil, err
	}
	b.sessions[chatID] = conv.Session().ID
	return conv, nil
}

func defaultContext() chat.ChatContext {
	return chat.VerticalContext{ID: "money", Name: "finances"}
}

// availableTabs notes which extra result views a reply carries; the web UI
// renders these as tabs, here they become a hint line.
func availableTabs(resp models.PromptResponse) string {
	var tabs []string
	if resp.Chartable {
		tabs = append(tabs, "dashboard")
	}
	if resp.HasInsights {
		tabs = append(tabs, "insights")
	}
	if resp.HasImages {
		tabs = append(tabs, "images")
	}
	if resp.HasSources {
		tabs = append(tabs, "sources")
	}
	if len(tabs) == 0 {
		return ""
	}
	return "More in the app: " + strings.Join(tabs, ", ")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
