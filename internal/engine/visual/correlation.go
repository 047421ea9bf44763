// internal/engine/visual/correlation.go
package visual

import (
	"fmt"
	"math"
	"sort"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
)

// CorrelateFeedToVisualProgress relates a photo series to the feed history
// over the same window.
func (e *Engine) CorrelateFeedToVisualProgress(photos []models.PhotoObservation, feeds []models.FeedObservation) (*models.VisualCorrelationResult, error) {
	if len(photos) == 0 {
		metrics.AnalysesFailed.WithLabelValues("visual-correlation", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("need at least 1 photo observation")
	}

	ps := make([]models.PhotoObservation, len(photos))
	copy(ps, photos)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].CapturedAt.Before(ps[j].CapturedAt) })

	fs := make([]models.FeedObservation, len(feeds))
	copy(fs, feeds)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Timestamp.Before(fs[j].Timestamp) })

	first, last := ps[0], ps[len(ps)-1]

	bcsDelta := last.BodyConditionScore - first.BodyConditionScore
	bcsTrend := models.TrendStable
	switch {
	case bcsDelta > e.config.BCSTrendThreshold:
		bcsTrend = models.TrendImproving
	case bcsDelta < -e.config.BCSTrendThreshold:
		bcsTrend = models.TrendDeclining
	}

	weightDelta := last.EstimatedWeight - first.EstimatedWeight
	growthTrend := models.TrendStable
	switch {
	case weightDelta > e.config.GrowthUpperDelta:
		growthTrend = models.TrendAboveAverage
	case weightDelta < e.config.GrowthLowerDelta:
		growthTrend = models.TrendBelowAverage
	}

	healthDelta := meanHealthScore(last) - meanHealthScore(first)
	healthTrend := models.TrendStable
	switch {
	case healthDelta > e.config.HealthTrendThreshold:
		healthTrend = models.TrendImproving
	case healthDelta < -e.config.HealthTrendThreshold:
		healthTrend = models.TrendDeclining
	}

	result := &models.VisualCorrelationResult{
		AnimalID:            first.AnimalID,
		CorrelationStrength: correlationStrength(ps, fs),
		BodyConditionTrend:  bcsTrend,
		HealthTrend:         healthTrend,
		GrowthTrend:         growthTrend,
		FeedEffectiveness:   feedEffectiveness(ps),
	}
	result.Insights = insights(result, bcsDelta, weightDelta)
	result.Recommendations = correlationRecommendations(result)

	metrics.AnalysesCompleted.WithLabelValues("visual-correlation").Inc()
	return result, nil
}

func meanHealthScore(p models.PhotoObservation) float64 {
	if len(p.HealthIndicators) == 0 {
		return 0
	}
	var sum float64
	for _, hi := range p.HealthIndicators {
		sum += hi.Score
	}
	return sum / float64(len(p.HealthIndicators))
}

// feedEffectiveness averages the stored per-photo feed-impact scores.
func feedEffectiveness(photos []models.PhotoObservation) models.FeedEffectiveness {
	var fe models.FeedEffectiveness
	n := float64(len(photos))
	for _, p := range photos {
		fe.CoatCondition += p.FeedImpact.CoatCondition
		fe.BodyFill += p.FeedImpact.BodyFill
		fe.MuscleExpr += p.FeedImpact.MuscleExpr
		fe.Energy += p.FeedImpact.EnergyIndicator
		fe.Overall += p.FeedImpact.Overall
	}
	fe.CoatCondition = models.Clamp(fe.CoatCondition/n, 0, 100)
	fe.BodyFill = models.Clamp(fe.BodyFill/n, 0, 100)
	fe.MuscleExpr = models.Clamp(fe.MuscleExpr/n, 0, 100)
	fe.Energy = models.Clamp(fe.Energy/n, 0, 100)
	fe.Overall = models.Clamp(fe.Overall/n, 0, 100)
	return fe
}

// correlationStrength is the absolute Pearson correlation between per-interval
// visual-score deltas and the feed amounts consumed in each interval, scaled
// to [0,100]. Fewer than two intervals, or zero variance on either side,
// yields 0.
func correlationStrength(photos []models.PhotoObservation, feeds []models.FeedObservation) float64 {
	if len(photos) < 3 {
		return 0
	}

	var visualDeltas, feedAmounts []float64
	for i := 0; i+1 < len(photos); i++ {
		curr, next := photos[i], photos[i+1]
		visualDeltas = append(visualDeltas, next.BodyConditionScore-curr.BodyConditionScore)

		var amount float64
		for _, f := range feeds {
			if f.Timestamp.After(curr.CapturedAt) && !f.Timestamp.After(next.CapturedAt) {
				amount += f.Amount
			}
		}
		feedAmounts = append(feedAmounts, amount)
	}

	r := pearson(visualDeltas, feedAmounts)
	return models.Clamp(math.Abs(r)*100, 0, 100)
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func insights(r *models.VisualCorrelationResult, bcsDelta, weightDelta float64) []string {
	out := []string{
		fmt.Sprintf("Body condition changed %.1f points over the photo window", bcsDelta),
		fmt.Sprintf("Estimated weight changed %.1f lb over the photo window", weightDelta),
	}
	if r.CorrelationStrength >= 70 {
		out = append(out, "Visual progress tracks feed intake closely")
	} else if r.CorrelationStrength > 0 && r.CorrelationStrength < 30 {
		out = append(out, "Visual progress shows little relationship to feed intake in this window")
	}
	return out
}

func correlationRecommendations(r *models.VisualCorrelationResult) []string {
	var recs []string
	if r.BodyConditionTrend == models.TrendDeclining {
		recs = append(recs, "Body condition is slipping; review ration energy density.")
	}
	if r.HealthTrend == models.TrendDeclining {
		recs = append(recs, "Health indicators are trending down; schedule a closer inspection.")
	}
	if r.GrowthTrend == models.TrendBelowAverage {
		recs = append(recs, "Growth is behind; confirm feed amounts match the plan.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep the current program and continue regular photo checks.")
	}
	return recs
}
