// internal/engine/feedconversion/calculator.go
package feedconversion

import (
	"context"
	"math"
	"sort"
	"time"

	"livestock-engine/internal/catalog"
	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
	"livestock-engine/internal/store"
)

// Engine computes feed-conversion and growth metrics.
type Engine struct {
	config  *Config
	catalog catalog.Catalog
	store   store.ObservationStore
	logger  logger.Logger
}

func NewEngine(config *Config, cat catalog.Catalog, obs store.ObservationStore, log logger.Logger) *Engine {
	return &Engine{
		config:  config,
		catalog: cat,
		store:   obs,
		logger:  log.WithFields(map[string]interface{}{"engine": "feedconversion"}),
	}
}

// CalculateFCR computes the feed conversion ratio over paired weight and feed
// series. Both series are sorted chronologically here; caller order is not
// trusted.
func (e *Engine) CalculateFCR(ctx context.Context, weights []models.WeightObservation, feeds []models.FeedObservation) (*models.FCRResult, error) {
	if len(weights) < 2 {
		metrics.AnalysesFailed.WithLabelValues("fcr", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("need at least 2 weight observations")
	}
	if len(feeds) == 0 {
		metrics.AnalysesFailed.WithLabelValues("fcr", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("need at least 1 feed observation")
	}

	ws := make([]models.WeightObservation, len(weights))
	copy(ws, weights)
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Timestamp.Before(ws[j].Timestamp) })

	fs := make([]models.FeedObservation, len(feeds))
	copy(fs, feeds)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Timestamp.Before(fs[j].Timestamp) })

	first, last := ws[0], ws[len(ws)-1]

	elapsed := last.Timestamp.Sub(first.Timestamp)
	if elapsed <= 0 {
		metrics.AnalysesFailed.WithLabelValues("fcr", string(errors.ErrCodeInsufficientData)).Inc()
		return nil, errors.NewInsufficientDataError("weight series spans no time")
	}
	elapsedDays := int(math.Ceil(elapsed.Hours() / 24))

	totalGained := last.Weight - first.Weight
	if totalGained <= 0 {
		metrics.AnalysesFailed.WithLabelValues("fcr", string(errors.ErrCodeDivisionUndefined)).Inc()
		return nil, errors.NewDivisionUndefinedError(totalGained)
	}

	var totalFeed, totalCost float64
	for _, f := range fs {
		totalFeed += f.Amount
		totalCost += f.Cost
	}

	fcr := totalFeed / totalGained
	adg := totalGained / float64(elapsedDays)
	costPerPound := totalCost / totalGained

	primaryFeedID := primaryFeedProduct(fs)
	benchmark := e.buildBenchmark(ctx, primaryFeedID, fcr)

	result := &models.FCRResult{
		AnimalID:          first.AnimalID,
		FeedProductID:     primaryFeedID,
		PeriodStart:       first.Timestamp,
		PeriodEnd:         last.Timestamp,
		FCR:               fcr,
		AverageDailyGain:  adg,
		FeedEfficiency:    1 / fcr,
		CostPerPoundGain:  costPerPound,
		TotalFeedConsumed: totalFeed,
		TotalWeightGained: totalGained,
		TotalCost:         totalCost,
		ElapsedDays:       elapsedDays,
		Benchmark:         benchmark,
		Recommendations:   recommendations(benchmark.Ranking, adg),
		ComputedAt:        time.Now().UTC(),
	}

	metrics.AnalysesCompleted.WithLabelValues("fcr").Inc()
	e.logger.Info("fcr computed", map[string]interface{}{
		"animalId": result.AnimalID,
		"fcr":      result.FCR,
		"ranking":  string(benchmark.Ranking),
	})

	return result, nil
}

// primaryFeedProduct picks the most frequent feed product id; ties break by
// first-encountered order in the chronologically sorted series.
func primaryFeedProduct(feeds []models.FeedObservation) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, f := range feeds {
		if _, seen := counts[f.FeedProductID]; !seen {
			order = append(order, f.FeedProductID)
		}
		counts[f.FeedProductID]++
	}

	best := order[0]
	for _, id := range order[1:] {
		if counts[id] > counts[best] {
			best = id
		}
	}
	return best
}

func (e *Engine) buildBenchmark(ctx context.Context, feedProductID string, actualFCR float64) models.BenchmarkComparison {
	benchmarkFCR := e.config.DefaultBenchmarkFCR

	product, err := e.catalog.GetProduct(ctx, feedProductID)
	if err != nil {
		e.logger.Warn("benchmark fallback, primary feed not in catalog", map[string]interface{}{
			"feedProductId": feedProductID,
			"error":         err.Error(),
		})
	} else if product.ReferenceFCR > 0 {
		benchmarkFCR = product.ReferenceFCR
	}

	return models.BenchmarkComparison{
		BenchmarkFCR:    benchmarkFCR,
		IndustryAverage: e.config.IndustryAverageFCR,
		SpeciesAverage:  benchmarkFCR,
		BreedAverage:    benchmarkFCR,
		Ranking:         rankPerformance(actualFCR, benchmarkFCR),
	}
}

// rankPerformance derives the ranking from the actual/benchmark ratio using
// fixed breakpoints. Lower FCR is better.
func rankPerformance(actualFCR, benchmarkFCR float64) models.PerformanceRanking {
	if benchmarkFCR <= 0 {
		return models.RankingAverage
	}
	ratio := actualFCR / benchmarkFCR
	switch {
	case ratio <= 0.9:
		return models.RankingExcellent
	case ratio <= 1.0:
		return models.RankingGood
	case ratio <= 1.1:
		return models.RankingAverage
	case ratio <= 1.2:
		return models.RankingBelowAverage
	default:
		return models.RankingPoor
	}
}

func recommendations(ranking models.PerformanceRanking, adg float64) []string {
	var recs []string
	switch ranking {
	case models.RankingExcellent:
		recs = append(recs, "Conversion is ahead of benchmark; maintain the current ration.")
	case models.RankingGood:
		recs = append(recs, "Conversion is on benchmark; keep feed amounts consistent.")
	case models.RankingAverage:
		recs = append(recs, "Conversion is near benchmark; review feeding schedule consistency.")
	case models.RankingBelowAverage:
		recs = append(recs, "Conversion is lagging; check feed quality and waste at the bunk.")
	case models.RankingPoor:
		recs = append(recs, "Conversion is well below benchmark; consult your advisor about a ration change.")
	}
	if adg < 0.5 {
		recs = append(recs, "Daily gain is low; verify the animal is consuming its full ration.")
	}
	return recs
}
