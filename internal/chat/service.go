package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/models"
	"github.com/xaenox/lifeboard/internal/storage"
)

// Responder produces an assistant reply for a submitted prompt. Both the
// backend api client and the local OpenAI responder satisfy it.
type Responder interface {
	Respond(ctx context.Context, message string, chatCtx ChatContext) (models.PromptResponse, error)
}

// Service manages live conversations: opening sessions, submitting prompts
// and recording tab selections, persisting as it goes.
type Service struct {
	responder Responder
	store     storage.SessionStorage
	logger    *zap.Logger

	mu            sync.Mutex
	conversations map[string]*Conversation
}

func NewService(responder Responder, store storage.SessionStorage, logger *zap.Logger) *Service {
	return &Service{
		responder:     responder,
		store:         store,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

// Open starts a conversation for the given context. The greeting is stored
// as the first assistant message so the session replays cleanly.
func (s *Service) Open(ctx context.Context, userID string, chatCtx ChatContext) (*Conversation, error) {
	conv := NewConversation(userID, chatCtx, time.Now())
	conv.AppendAssistant(models.PromptResponse{Response: conv.Greeting()}, time.Now())

	if err := s.store.SaveSession(ctx, conv.Session()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	for _, msg := range conv.Messages() {
		if err := s.store.SaveMessage(ctx, msg); err != nil {
			return nil, fmt.Errorf("save message: %w", err)
		}
	}

	s.mu.Lock()
	s.conversations[conv.Session().ID] = conv
	s.mu.Unlock()
	return conv, nil
}

// Get returns a live conversation by session id.
func (s *Service) Get(sessionID string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[sessionID]
	return conv, ok
}

// Submit appends the user message, asks the responder and appends its
// reply. It returns the reply and the index of the assistant message.
func (s *Service) Submit(ctx context.Context, sessionID, message string) (models.PromptResponse, int, error) {
	conv, ok := s.Get(sessionID)
	if !ok {
		return models.PromptResponse{}, 0, fmt.Errorf("unknown session %s", sessionID)
	}

	userIdx := conv.AppendUser(message, time.Now())
	resp, err := s.responder.Respond(ctx, message, conv.Context())
	if err != nil {
		return models.PromptResponse{}, 0, fmt.Errorf("respond: %w", err)
	}
	assistantIdx := conv.AppendAssistant(resp, time.Now())

	msgs := conv.Messages()
	for _, idx := range []int{userIdx, assistantIdx} {
		if err := s.store.SaveMessage(ctx, msgs[idx]); err != nil {
			s.logger.Error("Failed to save message",
				zap.Error(err),
				zap.String("session_id", sessionID),
				zap.Int("index", idx))
		}
	}
	if err := s.store.SaveSession(ctx, conv.Session()); err != nil {
		s.logger.Error("Failed to update session", zap.Error(err), zap.String("session_id", sessionID))
	}

	return resp, assistantIdx, nil
}

// SelectTab applies one explicit tab selection and persists it.
func (s *Service) SelectTab(ctx context.Context, sessionID string, index int, tab models.Tab) error {
	conv, ok := s.Get(sessionID)
	if !ok {
		return fmt.Errorf("unknown session %s", sessionID)
	}
	if err := conv.SelectTab(index, tab); err != nil {
		return err
	}
	if err := s.store.SaveTabSelection(ctx, sessionID, index, tab); err != nil {
		s.logger.Error("Failed to save tab selection",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.Int("index", index))
	}
	return nil
}
