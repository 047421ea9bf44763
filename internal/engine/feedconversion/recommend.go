// internal/engine/feedconversion/recommend.go
package feedconversion

import (
	"context"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
)

// Focus areas a caller can select in a GoalProfile.
const (
	FocusGrowth     = "growth"
	FocusEfficiency = "efficiency"
	FocusCost       = "cost"
	FocusHealth     = "health"
)

var implementationChecklist = []string{
	"Transition over 7 days, replacing a quarter of the ration every 2 days",
	"Weigh at transition start to establish the new baseline",
	"Record feed amounts daily during the transition",
	"Watch for refusals or digestive upset and slow the transition if seen",
}

var monitoringPlan = []string{
	"Week 1: confirm full intake at target amounts, note any refusals",
	"Week 2: weigh mid-week and compare daily gain against the product reference",
	"Week 3: run a conversion analysis over the transition window",
}

// PredictOptimalFeed scores catalog products against the caller's goals and
// returns the top match. Deterministic for identical catalog and goals.
func (e *Engine) PredictOptimalFeed(ctx context.Context, animal models.AnimalRef, goals models.GoalProfile) (*models.FeedRecommendation, error) {
	products, err := e.catalog.ListForSpecies(ctx, animal.Species)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errors.NewNotFoundError("feed products for species", animal.Species)
	}

	focus := goals.FocusAreas
	if len(focus) == 0 {
		focus = []string{FocusGrowth, FocusEfficiency}
	}

	// Normalize each component against the best candidate so focus areas
	// contribute on a comparable 0-100 scale.
	maxGain, maxInvFCR, maxInvCost := 0.0, 0.0, 0.0
	for _, p := range products {
		if p.ReferenceGain > maxGain {
			maxGain = p.ReferenceGain
		}
		if p.ReferenceFCR > 0 && 1/p.ReferenceFCR > maxInvFCR {
			maxInvFCR = 1 / p.ReferenceFCR
		}
		if p.CostPerPound > 0 && 1/p.CostPerPound > maxInvCost {
			maxInvCost = 1 / p.CostPerPound
		}
	}

	score := func(p models.FeedProductProfile) float64 {
		var total float64
		for _, f := range focus {
			switch f {
			case FocusGrowth:
				if maxGain > 0 {
					total += p.ReferenceGain / maxGain * 100
				}
			case FocusEfficiency:
				if p.ReferenceFCR > 0 && maxInvFCR > 0 {
					total += (1 / p.ReferenceFCR) / maxInvFCR * 100
				}
			case FocusCost:
				if p.CostPerPound > 0 && maxInvCost > 0 {
					total += (1 / p.CostPerPound) / maxInvCost * 100
				}
			case FocusHealth:
				total += p.EfficiencyScore
			}
		}
		return total
	}

	// Strict greater-than keeps catalog order as the tiebreak.
	best := products[0]
	bestScore := score(best)
	for _, p := range products[1:] {
		if s := score(p); s > bestScore {
			best, bestScore = p, s
		}
	}

	metrics.AnalysesCompleted.WithLabelValues("feed-recommendation").Inc()
	e.logger.Info("feed recommendation produced", map[string]interface{}{
		"animalId": animal.ID,
		"product":  best.ID,
		"score":    bestScore,
	})

	return &models.FeedRecommendation{
		AnimalID:       animal.ID,
		Product:        best,
		Score:          bestScore,
		Checklist:      implementationChecklist,
		MonitoringPlan: monitoringPlan,
	}, nil
}
