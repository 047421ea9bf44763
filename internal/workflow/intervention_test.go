// internal/workflow/intervention_test.go
package workflow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"
)

type fakeGuidance struct {
	response *models.MentorResponse
	err      error
	contexts []models.GuidanceContext
}

func (g *fakeGuidance) GetGuidance(_ context.Context, gc models.GuidanceContext) (*models.MentorResponse, error) {
	g.contexts = append(g.contexts, gc)
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

type failingDeliverer struct{}

func (failingDeliverer) Deliver(context.Context, models.EducationalIntervention) error {
	return fmt.Errorf("smtp unreachable")
}

func TestProcessEducationalIntervention_KnownTemplate(t *testing.T) {
	deliverer := &fakeDeliverer{}
	sched := &fakeScheduler{}
	processor := NewInterventionProcessor(LoadConfig(), nil, deliverer, sched, logger.NewTestLogger(t))

	before := time.Now().UTC()
	intervention, err := processor.ProcessEducationalIntervention(
		context.Background(), "student-1", "low-fcr-performance",
		map[string]interface{}{"fcr": 8.5})
	require.NoError(t, err)

	assert.NotEmpty(t, intervention.ID)
	assert.Equal(t, "student-1", intervention.StudentID)
	assert.Equal(t, "Improving Feed Conversion", intervention.Title)
	assert.Len(t, intervention.ActionItems, 3)
	assert.Equal(t, "email", intervention.DeliveryMethod)

	wantFollowUp := before.AddDate(0, 0, LoadConfig().FollowUpDays)
	assert.WithinDuration(t, wantFollowUp, intervention.FollowUpAt, time.Minute)

	require.Len(t, deliverer.delivered, 1)
	assert.Equal(t, []string{intervention.ID}, sched.scheduled)
}

func TestProcessEducationalIntervention_UnknownTriggerUsesDefault(t *testing.T) {
	deliverer := &fakeDeliverer{}
	processor := NewInterventionProcessor(LoadConfig(), nil, deliverer, &fakeScheduler{}, logger.NewTestLogger(t))

	intervention, err := processor.ProcessEducationalIntervention(
		context.Background(), "student-1", "barn-inspection", nil)
	require.NoError(t, err)
	assert.Equal(t, "Project Check-In", intervention.Title)
}

func TestProcessEducationalIntervention_GuidanceEnrichesDescription(t *testing.T) {
	provider := &fakeGuidance{response: &models.MentorResponse{
		Advice:    "Check the feeder height, shorter goats waste feed.",
		Resources: []string{"feeder-setup"},
	}}
	deliverer := &fakeDeliverer{}
	processor := NewInterventionProcessor(LoadConfig(), provider, deliverer, &fakeScheduler{}, logger.NewTestLogger(t))

	intervention, err := processor.ProcessEducationalIntervention(
		context.Background(), "student-1", "low-fcr-performance",
		map[string]interface{}{"fcr": 8.5})
	require.NoError(t, err)

	assert.Contains(t, intervention.Description, "Check the feeder height")
	assert.Contains(t, intervention.Resources, "feeder-setup")

	require.Len(t, provider.contexts, 1)
	assert.Equal(t, "low-fcr-performance", provider.contexts[0].Topic)
	assert.Equal(t, 8.5, provider.contexts[0].Metrics["fcr"])
}

func TestProcessEducationalIntervention_GuidanceFailureDegradesToTemplate(t *testing.T) {
	provider := &fakeGuidance{err: fmt.Errorf("provider down")}
	deliverer := &fakeDeliverer{}
	processor := NewInterventionProcessor(LoadConfig(), provider, deliverer, &fakeScheduler{}, logger.NewTestLogger(t))

	intervention, err := processor.ProcessEducationalIntervention(
		context.Background(), "student-1", "declining-weight", nil)
	require.NoError(t, err)

	// Static template content survives untouched.
	assert.Equal(t, "Reversing a Weight Decline", intervention.Title)
	assert.NotContains(t, intervention.Description, "Mentor note")
	require.Len(t, deliverer.delivered, 1)
}

func TestProcessEducationalIntervention_DeliveryFailureFailsCall(t *testing.T) {
	processor := NewInterventionProcessor(LoadConfig(), nil, failingDeliverer{}, &fakeScheduler{}, logger.NewTestLogger(t))

	intervention, err := processor.ProcessEducationalIntervention(
		context.Background(), "student-1", "low-fcr-performance", nil)
	require.Error(t, err)
	assert.Nil(t, intervention)
}
