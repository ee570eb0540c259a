package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/api"
	"github.com/xaenox/lifeboard/internal/models"
	"github.com/xaenox/lifeboard/internal/storage"
)

type stubBackend struct {
	assets      []models.Asset
	summary     models.AssetsSummary
	assetsErr   error
	goals       []models.Goal
	goalsErr    error
	insights    []models.Insight
	insightsErr error
}

func (b *stubBackend) FetchAssets(context.Context) ([]models.Asset, models.AssetsSummary, error) {
	return b.assets, b.summary, b.assetsErr
}

func (b *stubBackend) FetchGoals(context.Context) ([]models.Goal, error) {
	return b.goals, b.goalsErr
}

func (b *stubBackend) FetchInsights(context.Context) ([]models.Insight, error) {
	return b.insights, b.insightsErr
}

type captureNotifier struct {
	digests []Digest
}

func (n *captureNotifier) SendDigest(_ context.Context, digest Digest) error {
	n.digests = append(n.digests, digest)
	return nil
}

var verticals = []string{"money", "healthcare", "life-essentials", "education"}

func testService(backend Backend, store storage.Storage) *Service {
	return NewService(backend, store, nil, "u1", verticals, zap.NewNop())
}

func TestRefresh_DerivesAssetState(t *testing.T) {
	overdue := time.Now().AddDate(0, 0, -5)
	backend := &stubBackend{
		assets: []models.Asset{{
			AssetID:            "a1",
			PurchaseDate:       time.Now().AddDate(-2, 0, 0),
			ExpectedLifespan:   10,
			NextMaintenanceDue: &overdue,
		}},
		summary: models.AssetsSummary{TotalAssets: 1},
	}

	svc := testService(backend, storage.NewMemoryStorage())
	svc.Refresh(context.Background())

	snapshot := svc.Snapshot()
	require.Len(t, snapshot.Assets, 1)
	assert.Equal(t, models.MaintenanceOverdue, snapshot.Assets[0].Display.MaintenanceStatus)
	assert.True(t, snapshot.Assets[0].Display.NeedsAttention)
	assert.Equal(t, 1, snapshot.Summary.TotalAssets)
	assert.False(t, snapshot.RefreshedAt.IsZero())
}

func TestRefresh_ResolvesGoals(t *testing.T) {
	when := time.Now().AddDate(0, 0, -3)
	backend := &stubBackend{
		goals: []models.Goal{{
			GoalID: "g1",
			Status: models.GoalActive,
			EvaluationHistory: []models.GoalEvaluationRecord{
				{EvaluatedAt: &when, Status: models.EvaluationAhead},
			},
		}},
	}

	svc := testService(backend, storage.NewMemoryStorage())
	svc.Refresh(context.Background())

	goals := svc.Snapshot().Goals
	require.Len(t, goals, 1)
	require.NotNil(t, goals[0].LatestEvaluation)
	assert.Equal(t, models.EvaluationAhead, goals[0].LatestEvaluation.Status)
}

func TestRefresh_AggregatesInsightsWithViewedMarkers(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.MarkInsightViewed(context.Background(), "u1", "i1"))

	backend := &stubBackend{
		insights: []models.Insight{
			{InsightID: "i1", Vertical: "money", InsightType: "spending", Priority: models.PriorityHigh},
			{InsightID: "i2", Vertical: "money", InsightType: "forecast", Priority: models.PriorityLow},
		},
	}

	svc := testService(backend, store)
	svc.Refresh(context.Background())

	aggs := svc.Snapshot().Insights
	money := aggs["money"]
	require.NotNil(t, money)
	assert.Equal(t, 2, money.TotalCount)
	assert.Equal(t, 1, money.ViewedCount)
	assert.Equal(t, 1, money.NewCount)

	// Every configured vertical gets a bucket, insights or not.
	for _, vertical := range verticals {
		require.Contains(t, aggs, vertical)
	}
	assert.Equal(t, 0, aggs["education"].TotalCount)
}

func TestRefresh_ParseErrorTreatedAsEmpty(t *testing.T) {
	backend := &stubBackend{insightsErr: &api.ParseError{Body: "<html>"}}

	svc := testService(backend, storage.NewMemoryStorage())
	svc.Refresh(context.Background())

	assert.NoError(t, svc.LastError("insights"))
	aggs := svc.Snapshot().Insights
	require.Contains(t, aggs, "money")
	assert.Equal(t, 0, aggs["money"].TotalCount)
}

func TestRefresh_FetchErrorKeepsPreviousSlot(t *testing.T) {
	backend := &stubBackend{
		goals: []models.Goal{{GoalID: "g1", Status: models.GoalActive}},
	}

	svc := testService(backend, storage.NewMemoryStorage())
	svc.Refresh(context.Background())
	require.Len(t, svc.Snapshot().Goals, 1)

	backend.goals = nil
	backend.goalsErr = errors.New("backend down")
	svc.Refresh(context.Background())

	// The failed slot keeps its previous value and records the error.
	assert.Len(t, svc.Snapshot().Goals, 1)
	assert.Error(t, svc.LastError("goals"))

	backend.goalsErr = nil
	backend.goals = []models.Goal{{GoalID: "g1"}, {GoalID: "g2"}}
	svc.Refresh(context.Background())
	assert.Len(t, svc.Snapshot().Goals, 2)
	assert.NoError(t, svc.LastError("goals"))
}

func TestRefresh_SendsDigest(t *testing.T) {
	backend := &stubBackend{
		assets: []models.Asset{{
			AssetID:          "a1",
			Manufacturer:     "Acme",
			Model:            "W-100",
			PurchaseDate:     time.Now().AddDate(-8, 0, 0),
			ExpectedLifespan: 10,
			Evaluation:       &models.AssetEvaluation{RiskScore: 80},
		}},
		goals: []models.Goal{{
			GoalID:    "g1",
			Status:    models.GoalActive,
			CreatedAt: time.Now().AddDate(0, 0, -100),
			Target:    models.GoalTarget{TargetDate: time.Now().AddDate(0, 0, 100)},
			Progress:  models.GoalProgress{PercentageComplete: 10},
		}},
		insights: []models.Insight{
			{InsightID: "i1", Vertical: "money", InsightType: "spending", Priority: models.PriorityHigh},
		},
	}

	notifier := &captureNotifier{}
	svc := NewService(backend, storage.NewMemoryStorage(), notifier, "u1", verticals, zap.NewNop())
	svc.Refresh(context.Background())

	require.Len(t, notifier.digests, 1)
	digest := notifier.digests[0]
	require.Len(t, digest.AttentionAssets, 1)
	assert.Equal(t, "a1", digest.AttentionAssets[0].Asset.AssetID)
	require.Len(t, digest.StrugglingGoals, 1)
	require.Len(t, digest.NewHighPriority, 1)
}

func TestRefresh_NoDigestWhenHealthy(t *testing.T) {
	backend := &stubBackend{
		assets: []models.Asset{{
			AssetID:          "a1",
			PurchaseDate:     time.Now().AddDate(-1, 0, 0),
			ExpectedLifespan: 10,
		}},
	}

	notifier := &captureNotifier{}
	svc := NewService(backend, storage.NewMemoryStorage(), notifier, "u1", verticals, zap.NewNop())
	svc.Refresh(context.Background())

	assert.Empty(t, notifier.digests)
}
