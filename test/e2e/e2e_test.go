// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/delivery"
	"livestock-engine/internal/engine/feedconversion"
	"livestock-engine/internal/engine/visual"
	"livestock-engine/internal/models"
	"livestock-engine/internal/orchestrator"
	"livestock-engine/internal/store"
	"livestock-engine/internal/workflow"
)

// These tests run the full pipeline against a real Redis. Set E2E_REDIS_ADDR
// (for example localhost:6379) to enable them; they flush the selected
// database.

func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("E2E_REDIS_ADDR")
	if addr == "" {
		t.Skip("E2E_REDIS_ADDR not set, skipping end-to-end tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 9})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

// staticCatalog keeps the e2e surface at Redis plus the engines; the catalog
// has its own integration tests against Postgres.
type staticCatalog struct{}

var showFeed = models.FeedProductProfile{
	ID:              "show-feed-16",
	Name:            "Show Feed 16%",
	Species:         "goat",
	Protein:         16,
	ReferenceFCR:    6.0,
	ReferenceGain:   1.1,
	CostPerPound:    0.30,
	EfficiencyScore: 80,
}

func (staticCatalog) GetProduct(_ context.Context, feedProductID string) (*models.FeedProductProfile, error) {
	if feedProductID != showFeed.ID {
		return nil, errors.NewNotFoundError("feed product", feedProductID)
	}
	p := showFeed
	return &p, nil
}

func (staticCatalog) ListForSpecies(context.Context, string) ([]models.FeedProductProfile, error) {
	return []models.FeedProductProfile{showFeed}, nil
}

type capturingNotifier struct {
	subjects []string
}

func (n *capturingNotifier) Notify(_ context.Context, _ models.OutputDestination, subject, _ string) error {
	n.subjects = append(n.subjects, subject)
	return nil
}

type immediateScheduler struct{}

func (immediateScheduler) ScheduleFollowUp(time.Time, string, func()) error { return nil }

type stack struct {
	service   *orchestrator.Service
	store     *store.RedisStore
	notifier  *capturingNotifier
	workflows *workflow.Engine
}

func buildStack(t *testing.T) *stack {
	t.Helper()

	log := logger.NewTestLogger(t)
	redisStore := store.NewRedisStore(redisClient(t))

	fcrEngine := feedconversion.NewEngine(feedconversion.LoadConfig(), staticCatalog{}, redisStore, log)
	visualEngine := visual.NewEngine(visual.LoadConfig(), redisStore, log)

	notifier := &capturingNotifier{}
	wfConfig := workflow.LoadConfig()
	interventions := workflow.NewInterventionProcessor(
		wfConfig, nil, delivery.NewNoOp(log), immediateScheduler{}, log)
	executor := workflow.NewExecutor(
		redisStore, fcrEngine, visualEngine, notifier, interventions, nil, log)
	wfEngine := workflow.NewEngine(wfConfig, workflow.DefaultWorkflows(), executor, log)

	return &stack{
		service: orchestrator.New(
			orchestrator.LoadConfig(), redisStore, redisStore,
			fcrEngine, visualEngine, wfEngine, log),
		store:     redisStore,
		notifier:  notifier,
		workflows: wfEngine,
	}
}

func seedAnimal(t *testing.T, s *stack) {
	t.Helper()
	require.NoError(t, s.store.RegisterAnimal(context.Background(), "student-1", models.AnimalRef{
		ID:      "goat-1",
		Species: "goat",
		Breed:   "boer",
	}))
}

func TestEndToEnd_FeedToPerformanceAlert(t *testing.T) {
	s := buildStack(t)
	seedAnimal(t, s)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err := s.service.ProcessAnimalDataUpdate(ctx, orchestrator.AnimalUpdate{
		UserID:     "student-1",
		AnimalID:   "goat-1",
		UpdateType: orchestrator.UpdateWeight,
		Weight:     &models.WeightObservation{AnimalID: "goat-1", Weight: 60, Timestamp: base},
	})
	require.NoError(t, err)

	for week := 0; week < 4; week++ {
		_, err := s.service.ProcessAnimalDataUpdate(ctx, orchestrator.AnimalUpdate{
			UserID:     "student-1",
			AnimalID:   "goat-1",
			UpdateType: orchestrator.UpdateFeed,
			Feed: &models.FeedObservation{
				AnimalID:      "goat-1",
				FeedProductID: "show-feed-16",
				Amount:        60,
				Cost:          18,
				Timestamp:     base.AddDate(0, 0, week*7+1),
			},
		})
		require.NoError(t, err)
	}

	profile, err := s.service.ProcessAnimalDataUpdate(ctx, orchestrator.AnimalUpdate{
		UserID:     "student-1",
		AnimalID:   "goat-1",
		UpdateType: orchestrator.UpdateWeight,
		Weight:     &models.WeightObservation{AnimalID: "goat-1", Weight: 90, Timestamp: base.AddDate(0, 0, 30)},
	})
	require.NoError(t, err)

	require.NotNil(t, profile.LatestFCR)
	assert.InDelta(t, 8.0, profile.LatestFCR.FCR, 1e-9)
	assert.Contains(t, s.notifier.subjects, "Feed conversion needs attention")

	// The computed result was persisted alongside the observations.
	results, err := s.store.ListFCRResults(ctx, "goat-1")
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	dashboard, err := s.service.GeneratePersonalizedDashboard(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, dashboard.Profiles, 1)
	assert.NotEmpty(t, dashboard.Alerts)
}

func TestEndToEnd_PhotoSeriesDrivesVisualSections(t *testing.T) {
	s := buildStack(t)
	seedAnimal(t, s)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	var profile *models.ComprehensiveAnimalProfile
	for i, bcs := range []float64{4.0, 4.3, 4.6, 5.0} {
		var err error
		profile, err = s.service.ProcessAnimalDataUpdate(ctx, orchestrator.AnimalUpdate{
			UserID:     "student-1",
			AnimalID:   "goat-1",
			UpdateType: orchestrator.UpdatePhoto,
			Photo: &models.PhotoObservation{
				AnimalID:           "goat-1",
				CapturedAt:         base.AddDate(0, 0, i*10),
				BodyConditionScore: bcs,
				EstimatedWeight:    60 + float64(i)*8,
			},
		})
		require.NoError(t, err)
	}

	require.NotNil(t, profile.LatestPredicted)
	assert.Equal(t, 4, profile.LatestPredicted.BasedOnPhotos)
	assert.Greater(t, profile.LatestPredicted.GrowthRateDay, 0.0)

	require.NotNil(t, profile.LatestVisual)
	assert.Equal(t, models.TrendImproving, profile.LatestVisual.BodyConditionTrend)
}

func TestEndToEnd_WeightDeclineFilesIntervention(t *testing.T) {
	s := buildStack(t)
	seedAnimal(t, s)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, w := range []float64{100, 88} {
		_, err := s.service.ProcessAnimalDataUpdate(ctx, orchestrator.AnimalUpdate{
			UserID:     "student-1",
			AnimalID:   "goat-1",
			UpdateType: orchestrator.UpdateWeight,
			Weight:     &models.WeightObservation{AnimalID: "goat-1", Weight: w, Timestamp: base.AddDate(0, 0, i*7)},
		})
		require.NoError(t, err)
	}

	// The decline crossed the weight-progress rule threshold and filed an
	// intervention.
	history := s.workflows.ExecutionHistory("weight-progress")
	require.Len(t, history, 2)
	final := history[1].RuleResults[0]
	assert.True(t, final.ConditionsMet)
	assert.True(t, final.Success)
	assert.NotEmpty(t, final.ResultPayload["interventionId"])
}
