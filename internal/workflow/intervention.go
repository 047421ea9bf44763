// internal/workflow/intervention.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/delivery"
	"livestock-engine/internal/guidance"
	"livestock-engine/internal/models"
	"livestock-engine/internal/scheduler"
)

// interventionTemplate holds the static content for a known trigger name.
type interventionTemplate struct {
	title       string
	description string
	actionItems []string
	resources   []string
	timeline    string
}

var interventionTemplates = map[string]interventionTemplate{
	"low-fcr-performance": {
		title:       "Improving Feed Conversion",
		description: "Feed conversion is trailing the benchmark for this project. These steps tighten up the ration and routine.",
		actionItems: []string{
			"Weigh feed at every feeding instead of estimating",
			"Split the daily ration into two feedings",
			"Record refusals so wasted feed is visible",
		},
		resources: []string{"feed-efficiency-basics", "ration-balancing-guide"},
		timeline:  "2 weeks",
	},
	"declining-weight": {
		title:       "Reversing a Weight Decline",
		description: "Recorded weights are trending down. Rule out health issues first, then review intake.",
		actionItems: []string{
			"Schedule a health check with your project advisor",
			"Verify water access and intake",
			"Re-weigh in 3 days to confirm the trend",
		},
		resources: []string{"weight-loss-checklist"},
		timeline:  "1 week",
	},
	"declining-body-condition": {
		title:       "Body Condition Recovery",
		description: "Photo analysis shows body condition slipping. Adjust energy density before it affects growth.",
		actionItems: []string{
			"Increase energy concentrate by 10 percent",
			"Take comparison photos every 3 days",
			"Check for parasites or dental issues",
		},
		resources: []string{"body-condition-scoring-guide"},
		timeline:  "2 weeks",
	},
	"performance-alert": {
		title:       "Performance Alert Follow-Up",
		description: "A monitored metric crossed its alert threshold. Review the metric and the recent management changes around it.",
		actionItems: []string{
			"Review the flagged metric against its threshold",
			"List management changes from the past week",
			"Discuss findings with your mentor",
		},
		resources: []string{"performance-troubleshooting"},
		timeline:  "1 week",
	},
}

// defaultTemplate covers trigger names without a curated entry.
var defaultTemplate = interventionTemplate{
	title:       "Project Check-In",
	description: "An automated check flagged this project for review.",
	actionItems: []string{
		"Review recent records for this animal",
		"Note anything unusual and share it with your advisor",
	},
	resources: []string{"project-record-keeping"},
	timeline:  "1 week",
}

// InterventionProcessor builds educational interventions, enriches them with
// mentor guidance when available, delivers them, and schedules the follow-up.
type InterventionProcessor struct {
	config    *Config
	guidance  guidance.Provider
	deliverer delivery.Deliverer
	scheduler scheduler.FollowUpScheduler
	logger    logger.Logger
}

func NewInterventionProcessor(
	cfg *Config,
	provider guidance.Provider,
	deliverer delivery.Deliverer,
	sched scheduler.FollowUpScheduler,
	log logger.Logger,
) *InterventionProcessor {
	return &InterventionProcessor{
		config:    cfg,
		guidance:  provider,
		deliverer: deliverer,
		scheduler: sched,
		logger:    log,
	}
}

// ProcessEducationalIntervention assembles the intervention record for the
// named trigger, consults the guidance provider, delivers the record, and
// schedules its follow-up check. Guidance failures degrade to the static
// template; delivery failures fail the call.
func (p *InterventionProcessor) ProcessEducationalIntervention(ctx context.Context, studentID, triggerName string, triggerFields map[string]interface{}) (*models.EducationalIntervention, error) {
	tmpl, ok := interventionTemplates[triggerName]
	if !ok {
		tmpl = defaultTemplate
	}

	now := time.Now().UTC()
	intervention := &models.EducationalIntervention{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		TriggerName:    triggerName,
		Title:          tmpl.title,
		Description:    tmpl.description,
		ActionItems:    append([]string(nil), tmpl.actionItems...),
		Resources:      append([]string(nil), tmpl.resources...),
		Timeline:       tmpl.timeline,
		DeliveryMethod: "email",
		Timing:         "immediate",
		Frequency:      "once",
		FollowUpAt:     now.AddDate(0, 0, p.config.FollowUpDays),
		CreatedAt:      now,
	}

	if p.guidance != nil {
		mentor, err := p.guidance.GetGuidance(ctx, models.GuidanceContext{
			StudentID: studentID,
			Topic:     triggerName,
			Metrics:   triggerFields,
		})
		if err != nil {
			p.logger.Warn("guidance provider unavailable, using static template", map[string]interface{}{
				"trigger_name": triggerName,
				"error":        err.Error(),
			})
		} else if mentor.Advice != "" {
			intervention.Description = fmt.Sprintf("%s Mentor note: %s", intervention.Description, mentor.Advice)
			intervention.Resources = append(intervention.Resources, mentor.Resources...)
		}
	}

	if err := p.deliverer.Deliver(ctx, *intervention); err != nil {
		return nil, err
	}
	metrics.InterventionsDelivered.WithLabelValues(intervention.DeliveryMethod).Inc()

	id := intervention.ID
	if err := p.scheduler.ScheduleFollowUp(intervention.FollowUpAt, id, func() {
		p.logger.Info("intervention follow-up due", map[string]interface{}{
			"intervention_id": id,
			"student_id":      studentID,
		})
	}); err != nil {
		p.logger.Warn("failed to schedule follow-up", map[string]interface{}{
			"intervention_id": id,
			"error":           err.Error(),
		})
	}

	return intervention, nil
}
