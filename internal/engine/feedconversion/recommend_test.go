// internal/engine/feedconversion/recommend_test.go
package feedconversion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"
)

func TestPredictOptimalFeed_DefaultFocus(t *testing.T) {
	engine, _ := createTestEngine(t)

	animal := models.AnimalRef{ID: "pig-1", Species: "swine"}
	rec, err := engine.PredictOptimalFeed(context.Background(), animal, models.GoalProfile{})
	require.NoError(t, err)

	// show-feed-16 leads both default focus areas: best reference gain and
	// best (lowest) reference FCR.
	assert.Equal(t, "show-feed-16", rec.Product.ID)
	assert.InDelta(t, 200.0, rec.Score, 1e-9)
	assert.NotEmpty(t, rec.Checklist)
	assert.Len(t, rec.MonitoringPlan, 3)
}

func TestPredictOptimalFeed_CostFocusFlipsWinner(t *testing.T) {
	engine, _ := createTestEngine(t)

	animal := models.AnimalRef{ID: "pig-1", Species: "swine"}
	goals := models.GoalProfile{FocusAreas: []string{FocusCost}}

	rec, err := engine.PredictOptimalFeed(context.Background(), animal, goals)
	require.NoError(t, err)
	assert.Equal(t, "grower-14", rec.Product.ID)
	assert.InDelta(t, 100.0, rec.Score, 1e-9)
}

func TestPredictOptimalFeed_Deterministic(t *testing.T) {
	engine, _ := createTestEngine(t)

	animal := models.AnimalRef{ID: "pig-1", Species: "swine"}
	goals := models.GoalProfile{FocusAreas: []string{FocusGrowth, FocusHealth}}

	first, err := engine.PredictOptimalFeed(context.Background(), animal, goals)
	require.NoError(t, err)
	second, err := engine.PredictOptimalFeed(context.Background(), animal, goals)
	require.NoError(t, err)

	assert.Equal(t, first.Product.ID, second.Product.ID)
	assert.Equal(t, first.Score, second.Score)
}

func TestPredictOptimalFeed_EmptyCatalog(t *testing.T) {
	obs := newFakeStore()
	empty := &fakeCatalog{products: map[string]models.FeedProductProfile{}}
	engine := NewEngine(LoadConfig(), empty, obs, logger.NewTestLogger(t))

	_, err := engine.PredictOptimalFeed(context.Background(), models.AnimalRef{Species: "swine"}, models.GoalProfile{})
	require.Error(t, err)
}
