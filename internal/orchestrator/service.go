// internal/orchestrator/service.go
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/engine/feedconversion"
	"livestock-engine/internal/engine/visual"
	"livestock-engine/internal/models"
	"livestock-engine/internal/store"
	"livestock-engine/internal/workflow"
)

// UpdateType enumerates the data-update kinds the service orchestrates.
const (
	UpdateFeed   = "feed"
	UpdateWeight = "weight"
	UpdatePhoto  = "photo"
)

// AnimalUpdate is one incoming data update for an animal. Exactly one of the
// observation pointers matching UpdateType must be set.
type AnimalUpdate struct {
	UserID     string
	AnimalID   string
	UpdateType string
	Weight     *models.WeightObservation
	Feed       *models.FeedObservation
	Photo      *models.PhotoObservation
}

// Service coordinates the analytics engines, the workflow engine, and the
// external collaborators behind a single entry point. Construct it with New;
// a zero-value Service rejects all calls.
type Service struct {
	config      *Config
	store       store.ObservationStore
	directory   store.AnimalDirectory
	fcrEngine   *feedconversion.Engine
	visual      *visual.Engine
	workflows   *workflow.Engine
	cache       *gocache.Cache
	reporter    *errors.Reporter
	logger      logger.Logger
	initialized bool
}

func New(
	cfg *Config,
	obs store.ObservationStore,
	directory store.AnimalDirectory,
	fcrEngine *feedconversion.Engine,
	visualEngine *visual.Engine,
	workflows *workflow.Engine,
	log logger.Logger,
) *Service {
	return &Service{
		config:      cfg,
		store:       obs,
		directory:   directory,
		fcrEngine:   fcrEngine,
		visual:      visualEngine,
		workflows:   workflows,
		cache:       gocache.New(cfg.ProfileCacheTTL, cfg.ProfileCacheCleanup),
		reporter:    errors.NewReporter(log),
		logger:      log,
		initialized: true,
	}
}

// ProcessAnimalDataUpdate persists the observation, fires the matching
// workflow trigger, recomputes the animal's profile, and refreshes the
// profile cache. When a fresh FCR result comes out of the recompute, a
// follow-on fcr-calculation trigger fires so performance rules see it.
func (s *Service) ProcessAnimalDataUpdate(ctx context.Context, update AnimalUpdate) (*models.ComprehensiveAnimalProfile, error) {
	if !s.initialized {
		return nil, errors.NewNotInitializedError("orchestration service")
	}

	session := models.SessionRecord{
		ID:         uuid.NewString(),
		UserID:     update.UserID,
		AnimalID:   update.AnimalID,
		UpdateType: update.UpdateType,
		StartedAt:  time.Now().UTC(),
	}
	s.logger.Info("processing animal data update", map[string]interface{}{
		"session_id":  session.ID,
		"animal_id":   update.AnimalID,
		"update_type": update.UpdateType,
	})

	trigger, err := s.persistUpdate(ctx, update)
	if err != nil {
		return nil, s.reporter.Report("persist-update", err)
	}

	if _, err := s.workflows.TriggerWorkflow(ctx, *trigger); err != nil {
		// Workflow failures never block the data path; the observation is
		// already persisted.
		s.reporter.Report("trigger-workflow", err)
	}

	profile, fcrResult, err := s.recomputeProfile(ctx, update.AnimalID)
	if err != nil {
		return nil, s.reporter.Report("recompute-profile", err)
	}

	if fcrResult != nil {
		fcrTrigger := models.WorkflowTrigger{
			ID:       uuid.NewString(),
			Type:     models.TriggerFCRCalculation,
			AnimalID: update.AnimalID,
			UserID:   update.UserID,
			Payload: models.TriggerPayload{
				FCRCalculation: &models.FCRCalculationPayload{
					FCR:              fcrResult.FCR,
					AverageDailyGain: fcrResult.AverageDailyGain,
					Ranking:          string(fcrResult.Benchmark.Ranking),
				},
			},
			Timestamp: time.Now().UTC(),
			Priority:  models.PriorityNormal,
		}
		if _, err := s.workflows.TriggerWorkflow(ctx, fcrTrigger); err != nil {
			s.reporter.Report("trigger-fcr-workflow", err)
		}
	}

	s.cache.Set(profileCacheKey(update.AnimalID), profile, gocache.DefaultExpiration)
	return profile, nil
}

// persistUpdate appends the observation and builds the trigger for it.
func (s *Service) persistUpdate(ctx context.Context, update AnimalUpdate) (*models.WorkflowTrigger, error) {
	trigger := models.WorkflowTrigger{
		ID:        uuid.NewString(),
		AnimalID:  update.AnimalID,
		UserID:    update.UserID,
		Timestamp: time.Now().UTC(),
		Priority:  models.PriorityNormal,
	}

	switch update.UpdateType {
	case UpdateFeed:
		if update.Feed == nil {
			return nil, errors.NewValidationFailedError("feed update without feed observation")
		}
		if err := s.store.AppendFeed(ctx, *update.Feed); err != nil {
			return nil, err
		}
		trigger.Type = models.TriggerFeedEntry
		trigger.Payload = models.TriggerPayload{FeedEntry: &models.FeedEntryPayload{
			FeedProductID: update.Feed.FeedProductID,
			Amount:        update.Feed.Amount,
			Cost:          update.Feed.Cost,
		}}

	case UpdateWeight:
		if update.Weight == nil {
			return nil, errors.NewValidationFailedError("weight update without weight observation")
		}
		payload := &models.WeightChangePayload{Weight: update.Weight.Weight}
		if prev, err := s.store.ListWeights(ctx, update.AnimalID); err == nil && len(prev) > 0 {
			last := prev[len(prev)-1].Weight
			payload.PrevWeight = last
			if last > 0 {
				payload.DeltaPercent = (update.Weight.Weight - last) / last * 100
			}
		}
		if err := s.store.AppendWeight(ctx, *update.Weight); err != nil {
			return nil, err
		}
		trigger.Type = models.TriggerWeightChange
		trigger.Payload = models.TriggerPayload{WeightChange: payload}

	case UpdatePhoto:
		if update.Photo == nil {
			return nil, errors.NewValidationFailedError("photo update without photo observation")
		}
		if err := s.store.AppendPhoto(ctx, *update.Photo); err != nil {
			return nil, err
		}
		condition := s.visual.AnalyzeBodyCondition(*update.Photo)
		trigger.Type = models.TriggerPhotoAnalysis
		trigger.Payload = models.TriggerPayload{PhotoAnalysis: &models.PhotoAnalysisPayload{
			BCS:             condition.Score,
			EstimatedWeight: update.Photo.EstimatedWeight,
			HealthConcerns:  len(update.Photo.HealthIndicators),
		}}

	default:
		return nil, errors.NewValidationFailedError("unknown update type " + update.UpdateType)
	}

	return &trigger, nil
}

// recomputeProfile rebuilds the merged read-model for one animal. Analytics
// that lack data degrade to absent sections instead of failing the profile.
// The returned FCRResult is non-nil only when this recompute produced a fresh
// one.
func (s *Service) recomputeProfile(ctx context.Context, animalID string) (*models.ComprehensiveAnimalProfile, *models.FCRResult, error) {
	animal, err := s.directory.GetAnimal(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}

	weights, err := s.store.ListWeights(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}
	feeds, err := s.store.ListFeeds(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}
	photos, err := s.store.ListPhotos(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}

	profile := &models.ComprehensiveAnimalProfile{
		Animal:    animal,
		UpdatedAt: time.Now().UTC(),
	}
	for _, f := range feeds {
		profile.TotalFeedCost += f.Cost
	}

	var freshFCR *models.FCRResult
	if result, err := s.fcrEngine.CalculateFCR(ctx, weights, feeds); err == nil {
		result.AnimalID = animalID
		profile.LatestFCR = result
		freshFCR = result
		if err := s.store.AppendFCRResult(ctx, *result); err != nil {
			s.reporter.Report("persist-fcr-result", err)
		}
	} else if !isDataShortage(err) {
		return nil, nil, err
	}

	if corr, err := s.visual.CorrelateFeedToVisualProgress(photos, feeds); err == nil {
		corr.AnimalID = animalID
		profile.LatestVisual = corr
	} else if !isDataShortage(err) {
		return nil, nil, err
	}

	if pred, err := s.visual.PredictGrowthFromPhotos(photos); err == nil {
		pred.AnimalID = animalID
		profile.LatestPredicted = pred
	} else if !isDataShortage(err) {
		return nil, nil, err
	}

	return profile, freshFCR, nil
}

// Profile returns the cached profile for an animal, recomputing on miss.
func (s *Service) Profile(ctx context.Context, animalID string) (*models.ComprehensiveAnimalProfile, error) {
	if !s.initialized {
		return nil, errors.NewNotInitializedError("orchestration service")
	}

	if cached, ok := s.cache.Get(profileCacheKey(animalID)); ok {
		if profile, ok := cached.(*models.ComprehensiveAnimalProfile); ok {
			return profile, nil
		}
	}

	profile, _, err := s.recomputeProfile(ctx, animalID)
	if err != nil {
		return nil, s.reporter.Report("recompute-profile", err)
	}
	s.cache.Set(profileCacheKey(animalID), profile, gocache.DefaultExpiration)
	return profile, nil
}

func profileCacheKey(animalID string) string { return "profile:" + animalID }

func isDataShortage(err error) bool {
	code := errors.AsStandardError(err).Code
	return code == errors.ErrCodeInsufficientData || code == errors.ErrCodeDivisionUndefined
}
