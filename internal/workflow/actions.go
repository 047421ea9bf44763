// internal/workflow/actions.go
package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/delivery"
	"livestock-engine/internal/models"
	"livestock-engine/internal/store"
)

// FCRAnalytics is the slice of the feed-conversion engine the action layer
// needs.
type FCRAnalytics interface {
	CalculateFCR(ctx context.Context, weights []models.WeightObservation, feeds []models.FeedObservation) (*models.FCRResult, error)
	PredictOptimalFeed(ctx context.Context, animal models.AnimalRef, goals models.GoalProfile) (*models.FeedRecommendation, error)
}

// VisualAnalytics is the slice of the visual engine the action layer needs.
type VisualAnalytics interface {
	CorrelateFeedToVisualProgress(photos []models.PhotoObservation, feeds []models.FeedObservation) (*models.VisualCorrelationResult, error)
	PredictGrowthFromPhotos(photos []models.PhotoObservation) (*models.GrowthPrediction, error)
}

// APICaller posts a rule payload to an external integration endpoint.
type APICaller interface {
	Call(ctx context.Context, url string, payload map[string]interface{}) error
}

// RestyCaller is the default APICaller.
type RestyCaller struct {
	client *resty.Client
}

func NewRestyCaller() *RestyCaller {
	return &RestyCaller{client: resty.New()}
}

func (c *RestyCaller) Call(ctx context.Context, url string, payload map[string]interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("integration endpoint returned status %d", resp.StatusCode())
	}
	return nil
}

// Executor runs a single rule action against the engine's collaborators.
type Executor struct {
	store         store.ObservationStore
	fcr           FCRAnalytics
	visual        VisualAnalytics
	notifier      delivery.Notifier
	interventions *InterventionProcessor
	api           APICaller
	logger        logger.Logger
}

func NewExecutor(
	obs store.ObservationStore,
	fcr FCRAnalytics,
	visual VisualAnalytics,
	notifier delivery.Notifier,
	interventions *InterventionProcessor,
	api APICaller,
	log logger.Logger,
) *Executor {
	return &Executor{
		store:         obs,
		fcr:           fcr,
		visual:        visual,
		notifier:      notifier,
		interventions: interventions,
		api:           api,
		logger:        log,
	}
}

// Execute dispatches on the rule's action type. Unknown action types fail the
// rule without affecting siblings.
func (x *Executor) Execute(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	switch rule.Action {
	case models.ActionNotify:
		return x.notify(ctx, rule, trigger)
	case models.ActionRecommend:
		return x.recommend(ctx, rule, trigger)
	case models.ActionAnalyze:
		return x.analyze(ctx, rule, trigger)
	case models.ActionReport:
		return x.report(ctx, rule, trigger)
	case models.ActionIntervene:
		return x.intervene(ctx, rule, trigger)
	case models.ActionCallAPI:
		return x.callAPI(ctx, rule, trigger)
	default:
		return nil, fmt.Errorf("unknown action type %q", rule.Action)
	}
}

func (x *Executor) notify(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	subject := configString(rule.Config, "subject", "Workflow notification")
	body := configString(rule.Config, "body", "")

	sent := 0
	for _, out := range rule.Outputs {
		if err := x.notifier.Notify(ctx, out.Destination, subject, body); err != nil {
			return nil, err
		}
		sent++
	}
	if sent == 0 {
		// A notify rule without outputs still surfaces on the dashboard.
		if err := x.notifier.Notify(ctx, models.DestDashboard, subject, body); err != nil {
			return nil, err
		}
		sent = 1
	}

	return map[string]interface{}{"notified": sent, "subject": subject}, nil
}

func (x *Executor) recommend(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	goals := models.GoalProfile{}
	if focus := configString(rule.Config, "focus", ""); focus != "" {
		goals.FocusAreas = []string{focus}
	}

	rec, err := x.fcr.PredictOptimalFeed(ctx, models.AnimalRef{ID: trigger.AnimalID}, goals)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"recommendedFeed": rec.Product.ID,
		"score":           rec.Score,
	}, nil
}

func (x *Executor) analyze(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	analysis := configString(rule.Config, "analysis", "fcr")

	switch analysis {
	case "fcr":
		weights, err := x.store.ListWeights(ctx, trigger.AnimalID)
		if err != nil {
			return nil, err
		}
		feeds, err := x.store.ListFeeds(ctx, trigger.AnimalID)
		if err != nil {
			return nil, err
		}
		// Compute and report only. The orchestrator's profile recompute owns
		// FCR persistence; writing here as well would double up the history
		// on every feed update.
		result, err := x.fcr.CalculateFCR(ctx, weights, feeds)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"fcr":     result.FCR,
			"ranking": string(result.Benchmark.Ranking),
		}, nil

	case "visual-correlation":
		photos, err := x.store.ListPhotos(ctx, trigger.AnimalID)
		if err != nil {
			return nil, err
		}
		feeds, err := x.store.ListFeeds(ctx, trigger.AnimalID)
		if err != nil {
			return nil, err
		}
		corr, err := x.visual.CorrelateFeedToVisualProgress(photos, feeds)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"correlationStrength": corr.CorrelationStrength,
			"bcsTrend":            string(corr.BodyConditionTrend),
		}, nil

	case "growth-prediction":
		photos, err := x.store.ListPhotos(ctx, trigger.AnimalID)
		if err != nil {
			return nil, err
		}
		pred, err := x.visual.PredictGrowthFromPhotos(photos)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"projections": len(pred.Projections),
		}, nil

	default:
		return nil, fmt.Errorf("unknown analysis kind %q", analysis)
	}
}

func (x *Executor) report(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	results, err := x.store.ListFCRResults(ctx, trigger.AnimalID)
	if err != nil {
		return nil, err
	}
	photos, err := x.store.ListPhotos(ctx, trigger.AnimalID)
	if err != nil {
		return nil, err
	}

	summary := map[string]interface{}{
		"animalId":     trigger.AnimalID,
		"fcrSnapshots": len(results),
		"photos":       len(photos),
	}
	if len(results) > 0 {
		summary["latestFcr"] = results[len(results)-1].FCR
	}

	body, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	for _, out := range rule.Outputs {
		if err := x.notifier.Notify(ctx, out.Destination, "Performance report", string(body)); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func (x *Executor) intervene(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	template := configString(rule.Config, "template", string(trigger.Type))

	intervention, err := x.interventions.ProcessEducationalIntervention(ctx, trigger.UserID, template, trigger.Payload.Fields())
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"interventionId": intervention.ID,
		"followUpAt":     intervention.FollowUpAt,
	}, nil
}

func (x *Executor) callAPI(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger) (map[string]interface{}, error) {
	url := configString(rule.Config, "url", "")
	if url == "" {
		return nil, fmt.Errorf("call-api rule %s has no url configured", rule.ID)
	}

	payload := trigger.Payload.Fields()
	payload["triggerId"] = trigger.ID
	payload["triggerType"] = string(trigger.Type)

	if err := x.api.Call(ctx, url, payload); err != nil {
		return nil, err
	}
	return map[string]interface{}{"url": url}, nil
}

func configString(config map[string]interface{}, key, fallback string) string {
	if v, ok := config[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}
