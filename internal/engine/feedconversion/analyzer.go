// internal/engine/feedconversion/analyzer.go
package feedconversion

import (
	"context"
	"fmt"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
)

// AnalyzeFeedPerformance scores how a feed product has performed for an
// animal, scaling the catalog's reference efficiency by the reference/actual
// FCR ratio.
func (e *Engine) AnalyzeFeedPerformance(ctx context.Context, animalID, feedProductID string) (*models.FeedAnalysis, error) {
	product, err := e.catalog.GetProduct(ctx, feedProductID)
	if err != nil {
		return nil, err
	}

	feeds, err := e.store.ListFeedsByProduct(ctx, animalID, feedProductID)
	if err != nil {
		return nil, err
	}
	if len(feeds) == 0 {
		metrics.AnalysesFailed.WithLabelValues("feed-performance", string(errors.ErrCodeNotFound)).Inc()
		return nil, errors.NewNotFoundError("feed observation history", animalID+"/"+feedProductID)
	}

	var totalAmount, totalCost float64
	for _, f := range feeds {
		totalAmount += f.Amount
		totalCost += f.Cost
	}
	// Stored observations are not schema-checked, so zero amounts can occur.
	var actualUnitCost float64
	if totalAmount > 0 {
		actualUnitCost = totalCost / totalAmount
	}

	analysis := &models.FeedAnalysis{
		AnimalID:        animalID,
		FeedProductID:   feedProductID,
		ReferenceFCR:    product.ReferenceFCR,
		ActualUnitCost:  actualUnitCost,
		CatalogUnitCost: product.CostPerPound,
	}

	// Ratio of reference to actual FCR rewards below-benchmark conversion;
	// capped so noisy data cannot produce runaway rewards.
	ratio := 1.0
	if actual := e.latestFCRForFeed(ctx, animalID, feedProductID); actual > 0 {
		analysis.ActualFCR = actual
		ratio = product.ReferenceFCR / actual
		if ratio > e.config.MaxEfficiencyRatio {
			ratio = e.config.MaxEfficiencyRatio
		}
	} else {
		analysis.Notes = append(analysis.Notes, "no conversion analysis on record yet, scored at reference efficiency")
	}

	score := product.EfficiencyScore * ratio
	if totalAmount > 0 && actualUnitCost < product.CostPerPound {
		score += e.config.CostBonus
		analysis.Notes = append(analysis.Notes,
			fmt.Sprintf("unit cost $%.2f beats catalog price $%.2f", actualUnitCost, product.CostPerPound))
	}
	analysis.PerformanceScore = models.Clamp(score, 0, 100)

	metrics.AnalysesCompleted.WithLabelValues("feed-performance").Inc()
	return analysis, nil
}

// latestFCRForFeed returns the most recent stored FCR for the animal/feed
// pair, or 0 when none exists.
func (e *Engine) latestFCRForFeed(ctx context.Context, animalID, feedProductID string) float64 {
	results, err := e.store.ListFCRResults(ctx, animalID)
	if err != nil {
		e.logger.Warn("fcr history lookup failed", map[string]interface{}{
			"animalId": animalID,
			"error":    err.Error(),
		})
		return 0
	}

	for i := len(results) - 1; i >= 0; i-- {
		if results[i].FeedProductID == feedProductID {
			return results[i].FCR
		}
	}
	return 0
}
