// Package dashboard is the adapter layer between the backend fetches and
// the pure computation engines. It refreshes raw entities, derives the
// view-models and holds the latest snapshot.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/api"
	"github.com/xaenox/lifeboard/internal/goals"
	"github.com/xaenox/lifeboard/internal/insights"
	"github.com/xaenox/lifeboard/internal/lifecycle"
	"github.com/xaenox/lifeboard/internal/models"
	"github.com/xaenox/lifeboard/internal/storage"
)

// Backend is the slice of the api client the service needs.
type Backend interface {
	FetchAssets(ctx context.Context) ([]models.Asset, models.AssetsSummary, error)
	FetchGoals(ctx context.Context) ([]models.Goal, error)
	FetchInsights(ctx context.Context) ([]models.Insight, error)
}

// Notifier receives the attention digest after a refresh.
type Notifier interface {
	SendDigest(ctx context.Context, digest Digest) error
}

// AssetView pairs a raw asset with its derived display state.
type AssetView struct {
	Asset   models.Asset
	Display models.AssetDisplayData
}

// Snapshot is the latest derived state of the whole dashboard. Each entity
// slot is populated by its own fetch; a slot left empty by a failed fetch
// keeps its previous value.
type Snapshot struct {
	Assets      []AssetView
	Summary     models.AssetsSummary
	Goals       []models.Goal
	Insights    map[string]*models.InsightAggregation
	RefreshedAt time.Time
}

// Digest lists what changed enough to warrant a push notification.
type Digest struct {
	AttentionAssets []AssetView
	StrugglingGoals []models.Goal
	NewHighPriority []models.Insight
}

func (d Digest) Empty() bool {
	return len(d.AttentionAssets) == 0 && len(d.StrugglingGoals) == 0 && len(d.NewHighPriority) == 0
}

type Service struct {
	backend   Backend
	store     storage.Storage
	notifier  Notifier
	userID    string
	verticals []string
	logger    *zap.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	lastErrs map[string]error // per entity slot, for surfacing with retry
}

func NewService(backend Backend, store storage.Storage, notifier Notifier, userID string, verticals []string, logger *zap.Logger) *Service {
	return &Service{
		backend:   backend,
		store:     store,
		notifier:  notifier,
		userID:    userID,
		verticals: verticals,
		logger:    logger,
		lastErrs:  make(map[string]error),
	}
}

// SetNotifier attaches the digest notifier after construction; the bot
// that implements it needs the service first.
func (s *Service) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Snapshot returns the latest derived state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LastError returns the stored error for an entity slot ("assets", "goals",
// "insights"), if the most recent fetch of that slot failed.
func (s *Service) LastError(slot string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErrs[slot]
}

// Refresh fetches all three entity kinds concurrently and recomputes the
// derived state. The slots are independent, so no cross-entity locking:
// each fetch writes only its own piece and the last writer wins.
func (s *Service) Refresh(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); s.refreshAssets(ctx) }()
	go func() { defer wg.Done(); s.refreshGoals(ctx) }()
	go func() { defer wg.Done(); s.refreshInsights(ctx) }()
	wg.Wait()

	s.mu.Lock()
	s.snapshot.RefreshedAt = time.Now()
	snapshot := s.snapshot
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		digest := buildDigest(snapshot)
		if !digest.Empty() {
			if err := notifier.SendDigest(ctx, digest); err != nil {
				s.logger.Error("Failed to send digest", zap.Error(err))
			}
		}
	}
}

// Run refreshes immediately and then on every tick until the context ends.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *Service) refreshAssets(ctx context.Context) {
	assets, summary, err := s.backend.FetchAssets(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch assets", zap.Error(err))
		s.storeErr("assets", err)
		return
	}

	now := time.Now()
	views := make([]AssetView, 0, len(assets))
	for _, asset := range assets {
		views = append(views, AssetView{
			Asset:   asset,
			Display: lifecycle.Evaluate(asset, now),
		})
	}

	s.mu.Lock()
	s.snapshot.Assets = views
	s.snapshot.Summary = summary
	s.lastErrs["assets"] = nil
	s.mu.Unlock()
}

func (s *Service) refreshGoals(ctx context.Context) {
	raw, err := s.backend.FetchGoals(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch goals", zap.Error(err))
		s.storeErr("goals", err)
		return
	}

	resolved := make([]models.Goal, 0, len(raw))
	for _, goal := range raw {
		resolved = append(resolved, goals.Resolve(goal))
	}

	s.mu.Lock()
	s.snapshot.Goals = resolved
	s.lastErrs["goals"] = nil
	s.mu.Unlock()
}

func (s *Service) refreshInsights(ctx context.Context) {
	list, err := s.backend.FetchInsights(ctx)
	if err != nil {
		var parseErr *api.ParseError
		if !errors.As(err, &parseErr) {
			s.logger.Error("Failed to fetch insights", zap.Error(err))
			s.storeErr("insights", err)
			return
		}
		// Unrecognized shape: log and treat as zero insights. The decoder
		// keeps the two distinguishable; the lenient policy lives here.
		s.logger.Warn("Unrecognized insights response shape", zap.String("body", parseErr.Body))
		list = nil
	}

	viewed, err := s.store.ViewedInsights(ctx, s.userID)
	if err != nil {
		s.logger.Error("Failed to load viewed markers", zap.Error(err))
		viewed = map[string]bool{}
	}
	for i := range list {
		list[i].Viewed = viewed[list[i].InsightID]
	}

	aggs := insights.Aggregate(list)
	// The canonical vertical set is policy owned here, not by the engine:
	// every configured vertical gets a bucket even with zero insights.
	for _, vertical := range s.verticals {
		if _, ok := aggs[vertical]; !ok {
			aggs[vertical] = insights.NewAggregation(vertical)
		}
	}

	s.mu.Lock()
	s.snapshot.Insights = aggs
	s.lastErrs["insights"] = nil
	s.mu.Unlock()
}

func (s *Service) storeErr(slot string, err error) {
	s.mu.Lock()
	s.lastErrs[slot] = err
	s.mu.Unlock()
}

func buildDigest(snapshot Snapshot) Digest {
	var digest Digest
	for _, view := range snapshot.Assets {
		if view.Display.NeedsAttention {
			digest.AttentionAssets = append(digest.AttentionAssets, view)
		}
	}
	now := time.Now()
	for _, goal := range snapshot.Goals {
		if goal.Status != models.GoalActive {
			continue
		}
		status := goals.HealthStatus(goal, now)
		if goal.LatestEvaluation != nil {
			status = goal.LatestEvaluation.Status
		}
		if status == models.EvaluationAtRisk || status == models.EvaluationBehind || status == models.EvaluationOffTrack {
			digest.StrugglingGoals = append(digest.StrugglingGoals, goal)
		}
	}
	for _, agg := range snapshot.Insights {
		for _, insight := range agg.Items {
			if !insight.Viewed && insight.Priority == models.PriorityHigh {
				digest.NewHighPriority = append(digest.NewHighPriority, insight)
			}
		}
	}
	return digest
}
