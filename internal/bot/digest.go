package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/dashboard"
)

// SendDigest pushes an attention digest to the configured chat, making the
// bot usable as the dashboard's notifier.
func (b *Bot) SendDigest(ctx context.Context, chatID int64, digest dashboard.Digest) error {
	text := formatDigest(digest)
	if text == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	b.logger.Info("Sent attention digest",
		zap.Int("assets", len(digest.AttentionAssets)),
		zap.Int("goals", len(digest.StrugglingGoals)),
		zap.Int("insights", len(digest.NewHighPriority)))
	return nil
}

// DigestNotifier binds the bot to one chat so it satisfies
// dashboard.Notifier.
type DigestNotifier struct {
	bot    *Bot
	chatID int64
}

func (b *Bot) Notifier(chatID int64) *DigestNotifier {
	return &DigestNotifier{bot: b, chatID: chatID}
}

func (n *DigestNotifier) SendDigest(ctx context.Context, digest dashboard.Digest) error {
	return n.bot.SendDigest(ctx, n.chatID, digest)
}

func formatDigest(digest dashboard.Digest) string {
	var b strings.Builder

	if len(digest.AttentionAssets) > 0 {
		b.WriteString("🔧 Assets needing attention:\n")
		for _, view := range digest.AttentionAssets {
			b.WriteString(fmt.Sprintf("  • %s %s (%s risk, maintenance %s)\n",
				view.Asset.Manufacturer,
				view.Asset.Model,
				view.Display.RiskLevel,
				view.Display.MaintenanceStatus))
		}
	}

	if len(digest.StrugglingGoals) > 0 {
		b.WriteString("🎯 Goals falling behind:\n")
		for _, goal := range digest.StrugglingGoals {
			b.WriteString(fmt.Sprintf("  • %s (%s, %.0f%% complete)\n",
				goal.GoalType, goal.Vertical, goal.Progress.PercentageComplete))
		}
	}

	if len(digest.NewHighPriority) > 0 {
		b.WriteString("💡 New high-priority insights:\n")
		for _, insight := range digest.NewHighPriority {
			b.WriteString(fmt.Sprintf("  • [%s] %s\n", insight.Vertical, insight.Title))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
