// internal/common/validation/schema_test.go
package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"
)

func validTrigger(t models.TriggerType, payload models.TriggerPayload) models.WorkflowTrigger {
	return models.WorkflowTrigger{
		ID:        "trigger-1",
		Type:      t,
		AnimalID:  "goat-1",
		UserID:    "student-1",
		Payload:   payload,
		Timestamp: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestValidateTrigger_AcceptsWellFormedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		trigger models.WorkflowTrigger
	}{
		{
			"feed entry",
			validTrigger(models.TriggerFeedEntry, models.TriggerPayload{
				FeedEntry: &models.FeedEntryPayload{FeedProductID: "show-feed-16", Amount: 3.5, Cost: 1.05},
			}),
		},
		{
			"weight change",
			validTrigger(models.TriggerWeightChange, models.TriggerPayload{
				WeightChange: &models.WeightChangePayload{Weight: 85},
			}),
		},
		{
			"photo analysis",
			validTrigger(models.TriggerPhotoAnalysis, models.TriggerPayload{
				PhotoAnalysis: &models.PhotoAnalysisPayload{BCS: 4.5, EstimatedWeight: 80},
			}),
		},
		{
			"fcr calculation",
			validTrigger(models.TriggerFCRCalculation, models.TriggerPayload{
				FCRCalculation: &models.FCRCalculationPayload{FCR: 6.2, AverageDailyGain: 0.9},
			}),
		},
		{
			"milestone",
			validTrigger(models.TriggerEducationalMilestone, models.TriggerPayload{
				Milestone: &models.MilestonePayload{Milestone: "first-weigh-in", Progress: 10},
			}),
		},
		{
			"performance alert",
			validTrigger(models.TriggerPerformanceAlert, models.TriggerPayload{
				PerformanceAlert: &models.PerformanceAlertPayload{Metric: "fcr", Value: 8.1, Threshold: 7.0},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateTrigger(tt.trigger))
		})
	}
}

func TestValidateTrigger_RejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		trigger models.WorkflowTrigger
	}{
		{
			"feed entry without product",
			validTrigger(models.TriggerFeedEntry, models.TriggerPayload{
				FeedEntry: &models.FeedEntryPayload{Amount: 3.5},
			}),
		},
		{
			"feed entry with zero amount",
			validTrigger(models.TriggerFeedEntry, models.TriggerPayload{
				FeedEntry: &models.FeedEntryPayload{FeedProductID: "show-feed-16"},
			}),
		},
		{
			"weight change with zero weight",
			validTrigger(models.TriggerWeightChange, models.TriggerPayload{
				WeightChange: &models.WeightChangePayload{},
			}),
		},
		{
			"bcs outside the 1-9 scale",
			validTrigger(models.TriggerPhotoAnalysis, models.TriggerPayload{
				PhotoAnalysis: &models.PhotoAnalysisPayload{BCS: 12},
			}),
		},
		{
			"milestone without name",
			validTrigger(models.TriggerEducationalMilestone, models.TriggerPayload{
				Milestone: &models.MilestonePayload{Progress: 50},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrigger(tt.trigger)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
		})
	}
}

func TestValidateTrigger_RequiresIdentityFields(t *testing.T) {
	base := validTrigger(models.TriggerWeightChange, models.TriggerPayload{
		WeightChange: &models.WeightChangePayload{Weight: 85},
	})

	noUser := base
	noUser.UserID = ""
	assert.Error(t, ValidateTrigger(noUser))

	noTimestamp := base
	noTimestamp.Timestamp = time.Time{}
	assert.Error(t, ValidateTrigger(noTimestamp))
}

func TestValidateTrigger_UnknownKindPassesValidation(t *testing.T) {
	// Routing decides what happens to unknown kinds; validation only checks
	// shape.
	trigger := validTrigger("barn-inspection", models.TriggerPayload{
		Extra: map[string]interface{}{"note": "gate latch loose"},
	})
	assert.NoError(t, ValidateTrigger(trigger))
}

func TestValidateTrigger_ExtraFieldsAllowed(t *testing.T) {
	trigger := validTrigger(models.TriggerWeightChange, models.TriggerPayload{
		WeightChange: &models.WeightChangePayload{Weight: 85},
		Extra:        map[string]interface{}{"scaleId": "barn-scale-2"},
	})
	assert.NoError(t, ValidateTrigger(trigger))
}
