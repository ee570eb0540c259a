package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xaenox/lifeboard/internal/models"
)

type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	messages map[string][]models.ChatMessage // keyed by session id
	tabs     map[string]map[int]models.Tab   // session id -> message index -> tab
	viewed   map[string]map[string]bool      // user id -> insight id set
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[string]models.Session),
		messages: make(map[string][]models.ChatMessage),
		tabs:     make(map[string]map[int]models.Tab),
		viewed:   make(map[string]map[string]bool),
	}
}

func (s *MemoryStorage) SaveSession(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStorage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if session, exists := s.sessions[id]; exists {
		return &session, nil
	}
	return nil, fmt.Errorf("session %s not found", id)
}

func (s *MemoryStorage) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], msg)
	return nil
}

func (s *MemoryStorage) GetMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]models.ChatMessage, len(s.messages[sessionID]))
	copy(msgs, s.messages[sessionID])
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Index < msgs[j].Index })
	return msgs, nil
}

func (s *MemoryStorage) SaveTabSelection(ctx context.Context, sessionID string, messageIndex int, tab models.Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tabs[sessionID] == nil {
		s.tabs[sessionID] = make(map[int]models.Tab)
	}
	s.tabs[sessionID][messageIndex] = tab
	return nil
}

func (s *MemoryStorage) GetTabSelections(ctx context.Context, sessionID string) (map[int]models.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]models.Tab, len(s.tabs[sessionID]))
	for idx, tab := range s.tabs[sessionID] {
		out[idx] = tab
	}
	return out, nil
}

func (s *MemoryStorage) MarkInsightViewed(ctx context.Context, userID, insightID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewed[userID] == nil {
		s.viewed[userID] = make(map[string]bool)
	}
	s.viewed[userID][insightID] = true
	return nil
}

func (s *MemoryStorage) ViewedInsights(ctx context.Context, userID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.viewed[userID]))
	for id := range s.viewed[userID] {
		out[id] = true
	}
	return out, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
