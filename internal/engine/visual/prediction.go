// internal/engine/visual/prediction.go
package visual

import (
	"sort"
	"time"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
)

var predictionHorizons = []int{30, 60, 90}

// PredictGrowthFromPhotos extrapolates weight and body condition linearly
// from the photo series. Confidence decays with horizon.
func (e *Engine) PredictGrowthFromPhotos(photos []models.PhotoObservation) (*models.GrowthPrediction, error) {
	if len(photos) < 2 {
		metrics.AnalysesFailed.WithLabelValues("growth-prediction", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("need at least 2 photo observations")
	}

	ps := make([]models.PhotoObservation, len(photos))
	copy(ps, photos)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].CapturedAt.Before(ps[j].CapturedAt) })

	first, last := ps[0], ps[len(ps)-1]
	days := last.CapturedAt.Sub(first.CapturedAt).Hours() / 24
	if days <= 0 {
		metrics.AnalysesFailed.WithLabelValues("growth-prediction", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("photo series spans no time")
	}

	growthRate := (last.EstimatedWeight - first.EstimatedWeight) / days
	conditionRate := (last.BodyConditionScore - first.BodyConditionScore) / days

	confidences := []float64{e.config.Confidence30, e.config.Confidence60, e.config.Confidence90}
	projections := make([]models.PredictionPoint, 0, len(predictionHorizons))
	for i, horizon := range predictionHorizons {
		projections = append(projections, models.PredictionPoint{
			HorizonDays:   horizon,
			Weight:        last.EstimatedWeight + growthRate*float64(horizon),
			BodyCondition: models.Clamp(last.BodyConditionScore+conditionRate*float64(horizon), 1, 9),
			Confidence:    confidences[i],
		})
	}

	metrics.AnalysesCompleted.WithLabelValues("growth-prediction").Inc()
	return &models.GrowthPrediction{
		AnimalID:      first.AnimalID,
		CurrentWeight: last.EstimatedWeight,
		CurrentBCS:    last.BodyConditionScore,
		Projections:   projections,
		GrowthRateDay: growthRate,
		ConditionRate: conditionRate,
		BasedOnPhotos: len(ps),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
