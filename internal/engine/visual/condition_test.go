// internal/engine/visual/condition_test.go
package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"livestock-engine/internal/models"
)

func TestAnalyzeBodyCondition_Deterministic(t *testing.T) {
	engine := createTestEngine(t)

	photo := photoAt(0, 5.0, 70)
	photo.GrowthAssessment = models.GrowthAssessment{MuscleScore: 6, FatScore: 4}

	first := engine.AnalyzeBodyCondition(photo)
	second := engine.AnalyzeBodyCondition(photo)
	assert.Equal(t, first, second)
}

func TestAnalyzeBodyCondition_ScoreClampedToScale(t *testing.T) {
	engine := createTestEngine(t)

	low := engine.AnalyzeBodyCondition(photoAt(0, 0.2, 70))
	assert.Equal(t, 1.0, low.Score)

	high := engine.AnalyzeBodyCondition(photoAt(0, 12.0, 70))
	assert.Equal(t, 9.0, high.Score)
}

func TestAnalyzeBodyCondition_CompositionShadesCoverage(t *testing.T) {
	engine := createTestEngine(t)

	lean := photoAt(0, 5.0, 70)
	lean.GrowthAssessment = models.GrowthAssessment{MuscleScore: 8, FatScore: 3}

	fleshy := photoAt(0, 5.0, 70)
	fleshy.GrowthAssessment = models.GrowthAssessment{MuscleScore: 3, FatScore: 8}

	leanResult := engine.AnalyzeBodyCondition(lean)
	fleshyResult := engine.AnalyzeBodyCondition(fleshy)

	// Same BCS, different composition: muscle drives shoulder coverage and
	// fat drives rib coverage.
	assert.Greater(t, leanResult.ShoulderCoverage, fleshyResult.ShoulderCoverage)
	assert.Less(t, leanResult.RibCoverage, fleshyResult.RibCoverage)
	assert.Equal(t, leanResult.Score, fleshyResult.Score)
}

func TestAnalyzeBodyCondition_ConfidenceBounds(t *testing.T) {
	engine := createTestEngine(t)

	plain := engine.AnalyzeBodyCondition(photoAt(0, 5.0, 70))
	assert.Equal(t, 70.0, plain.Confidence)

	rich := photoAt(0, 5.0, 70)
	for i := 0; i < 20; i++ {
		rich.HealthIndicators = append(rich.HealthIndicators, models.HealthIndicator{
			Type: "coat", Score: 7, Severity: models.SeverityNormal,
		})
	}
	capped := engine.AnalyzeBodyCondition(rich)
	assert.Equal(t, 95.0, capped.Confidence)

	severe := photoAt(0, 5.0, 70)
	severe.HealthIndicators = []models.HealthIndicator{
		{Type: "lameness", Score: 2, Severity: models.SeveritySevere},
	}
	discounted := engine.AnalyzeBodyCondition(severe)
	assert.InDelta(t, 67.0, discounted.Confidence, 1e-9)
}
