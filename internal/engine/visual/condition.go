// internal/engine/visual/condition.go
package visual

import (
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"
	"livestock-engine/internal/store"
)

// Engine derives body-condition and growth insight from photo observations.
// The vision inference itself happens upstream; this engine owns the output
// contract.
type Engine struct {
	config *Config
	store  store.ObservationStore
	logger logger.Logger
}

func NewEngine(config *Config, obs store.ObservationStore, log logger.Logger) *Engine {
	return &Engine{
		config: config,
		store:  obs,
		logger: log.WithFields(map[string]interface{}{"engine": "visual"}),
	}
}

// AnalyzeBodyCondition produces the 1-9 score with coverage sub-indicators
// and a confidence percentage, deterministically from the photo record.
func (e *Engine) AnalyzeBodyCondition(photo models.PhotoObservation) models.BodyConditionResult {
	bcs := models.Clamp(photo.BodyConditionScore, 1, 9)

	// Coverage indicators track the BCS linearly, shaded by the muscle and
	// fat assessments so two photos with the same BCS but different
	// composition read differently.
	base := (bcs - 1) / 8 * 100
	muscleShade := (photo.GrowthAssessment.MuscleScore - 5) * 2
	fatShade := (photo.GrowthAssessment.FatScore - 5) * 2

	confidence := 70.0
	confidence += float64(len(photo.HealthIndicators)) * 2
	for _, hi := range photo.HealthIndicators {
		if hi.Severity == models.SeveritySevere {
			confidence -= 5
		}
	}

	return models.BodyConditionResult{
		AnimalID:         photo.AnimalID,
		Score:            bcs,
		RibCoverage:      models.Clamp(base+fatShade, 0, 100),
		SpinalCoverage:   models.Clamp(base+fatShade/2, 0, 100),
		ShoulderCoverage: models.Clamp(base+muscleShade, 0, 100),
		RumpCoverage:     models.Clamp(base+(muscleShade+fatShade)/2, 0, 100),
		Confidence:       models.Clamp(confidence, 0, 95),
	}
}
