// internal/engine/visual/report.go
package visual

import (
	"context"
	"sort"
	"time"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/models"
)

// GenerateVisualFeedReport aggregates correlation, progression, and
// prediction into the time-windowed report read-model.
func (e *Engine) GenerateVisualFeedReport(ctx context.Context, animal models.AnimalRef) (*models.VisualFeedReport, error) {
	photos, err := e.store.ListPhotos(ctx, animal.ID)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		metrics.AnalysesFailed.WithLabelValues("visual-report", string(errors.ErrCodeNotFound)).Inc()
		return nil, errors.NewNotFoundError("photo history", animal.ID)
	}

	feeds, err := e.store.ListFeeds(ctx, animal.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(photos, func(i, j int) bool { return photos[i].CapturedAt.Before(photos[j].CapturedAt) })
	sort.SliceStable(feeds, func(i, j int) bool { return feeds[i].Timestamp.Before(feeds[j].Timestamp) })

	correlation, err := e.CorrelateFeedToVisualProgress(photos, feeds)
	if err != nil {
		return nil, err
	}

	report := &models.VisualFeedReport{
		AnimalID:    animal.ID,
		PeriodStart: photos[0].CapturedAt,
		PeriodEnd:   photos[len(photos)-1].CapturedAt,
		Correlation: *correlation,
		GeneratedAt: time.Now().UTC(),
	}

	for _, p := range photos {
		report.PhotoProgression = append(report.PhotoProgression, models.PhotoProgressionEntry{
			CapturedAt:      p.CapturedAt,
			BCS:             p.BodyConditionScore,
			EstimatedWeight: p.EstimatedWeight,
		})
	}
	for _, f := range feeds {
		report.FeedProgression = append(report.FeedProgression, models.FeedProgressionEntry{
			Timestamp:     f.Timestamp,
			FeedProductID: f.FeedProductID,
			Amount:        f.Amount,
			Cost:          f.Cost,
		})
	}

	if len(photos) >= 2 {
		if prediction, err := e.PredictGrowthFromPhotos(photos); err == nil {
			report.Prediction = prediction
		}
	}

	metrics.AnalysesCompleted.WithLabelValues("visual-report").Inc()
	e.logger.Info("visual feed report generated", map[string]interface{}{
		"animalId": animal.ID,
		"photos":   len(photos),
	})

	return report, nil
}
