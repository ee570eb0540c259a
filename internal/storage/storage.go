package storage

import (
	"context"

	"github.com/xaenox/lifeboard/internal/models"
)

type Storage interface {
	// MarkInsightViewed records that the user has seen an insight; the
	// marker feeds the new/viewed split in aggregation.
	MarkInsightViewed(ctx context.Context, userID, insightID string) error
	ViewedInsights(ctx context.Context, userID string) (map[string]bool, error)
	Close() error

	// Embed SessionStorage interface
	SessionStorage
}

type SessionStorage interface {
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	SaveMessage(ctx context.Context, msg models.ChatMessage) error
	GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	SaveTabSelection(ctx context.Context, sessionID string, messageIndex int, tab models.Tab) error
	GetTabSelections(ctx context.Context, sessionID string) (map[int]models.Tab, error)
}
