// internal/engine/visual/prediction_test.go
package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"
)

func TestPredictGrowth_RequiresTwoPhotos(t *testing.T) {
	engine := createTestEngine(t)

	for _, tt := range []struct {
		name   string
		photos []models.PhotoObservation
	}{
		{"no photos", nil},
		{"single photo", []models.PhotoObservation{photoAt(0, 4.0, 60)}},
		{
			"photos at the same instant",
			[]models.PhotoObservation{photoAt(0, 4.0, 60), photoAt(0, 4.2, 61)},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := engine.PredictGrowthFromPhotos(tt.photos)
			require.Error(t, err)
			assert.Nil(t, pred)
			assert.Equal(t, errors.ErrCodeInsufficientData, errors.AsStandardError(err).Code)
		})
	}
}

func TestPredictGrowth_LinearExtrapolation(t *testing.T) {
	engine := createTestEngine(t)

	// 1 lb/day and 0.02 BCS/day over a 30 day window.
	photos := []models.PhotoObservation{
		photoAt(0, 4.0, 60),
		photoAt(30, 4.6, 90),
	}

	pred, err := engine.PredictGrowthFromPhotos(photos)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, pred.GrowthRateDay, 1e-9)
	assert.InDelta(t, 0.02, pred.ConditionRate, 1e-9)
	assert.Equal(t, 90.0, pred.CurrentWeight)
	assert.Equal(t, 2, pred.BasedOnPhotos)

	require.Len(t, pred.Projections, 3)
	assert.Equal(t, 30, pred.Projections[0].HorizonDays)
	assert.InDelta(t, 120.0, pred.Projections[0].Weight, 1e-9)
	assert.InDelta(t, 150.0, pred.Projections[1].Weight, 1e-9)
	assert.InDelta(t, 180.0, pred.Projections[2].Weight, 1e-9)
}

func TestPredictGrowth_ConfidenceStrictlyDecreasing(t *testing.T) {
	engine := createTestEngine(t)

	photos := []models.PhotoObservation{
		photoAt(0, 4.0, 60),
		photoAt(20, 4.4, 80),
	}

	pred, err := engine.PredictGrowthFromPhotos(photos)
	require.NoError(t, err)
	require.Len(t, pred.Projections, 3)

	for i := 1; i < len(pred.Projections); i++ {
		assert.Greater(t, pred.Projections[i-1].Confidence, pred.Projections[i].Confidence)
	}
}

func TestPredictGrowth_BCSClampedToScale(t *testing.T) {
	engine := createTestEngine(t)

	// Aggressive condition gain would project past the 9-point ceiling.
	photos := []models.PhotoObservation{
		photoAt(0, 5.0, 60),
		photoAt(10, 8.0, 70),
	}

	pred, err := engine.PredictGrowthFromPhotos(photos)
	require.NoError(t, err)
	for _, p := range pred.Projections {
		assert.GreaterOrEqual(t, p.BodyCondition, 1.0)
		assert.LessOrEqual(t, p.BodyCondition, 9.0)
	}
	assert.Equal(t, 9.0, pred.Projections[2].BodyCondition)
}

func TestPredictGrowth_SortsUnorderedPhotos(t *testing.T) {
	engine := createTestEngine(t)

	photos := []models.PhotoObservation{
		photoAt(30, 4.6, 90),
		photoAt(0, 4.0, 60),
	}

	pred, err := engine.PredictGrowthFromPhotos(photos)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pred.GrowthRateDay, 1e-9)
}
