// internal/workflow/research_test.go
package workflow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"
)

type fakeExporter struct {
	exported []models.ResearchDataWorkflowResult
	fail     error
}

func (e *fakeExporter) Export(_ context.Context, result models.ResearchDataWorkflowResult) error {
	if e.fail != nil {
		return e.fail
	}
	e.exported = append(e.exported, result)
	return nil
}

func createTestResearchProcessor(t *testing.T) (*ResearchProcessor, *fakeExporter) {
	t.Helper()
	exporter := &fakeExporter{}
	return NewResearchProcessor(LoadConfig(), exporter, logger.NewTestLogger(t)), exporter
}

func researchRecord(userID, animalID string, weight float64, age time.Duration) models.ResearchRecord {
	return models.ResearchRecord{
		UserID:   userID,
		AnimalID: animalID,
		DataType: "weight",
		Fields: map[string]interface{}{
			"weight":  weight,
			"consent": true,
		},
		Timestamp: time.Now().UTC().Add(-age),
	}
}

func TestProcessResearchDataWorkflow_EmptySet(t *testing.T) {
	processor, _ := createTestResearchProcessor(t)

	result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, errors.ErrCodeInsufficientData, errors.AsStandardError(err).Code)
}

func TestProcessResearchDataWorkflow_CleanSetScoresFull(t *testing.T) {
	processor, exporter := createTestResearchProcessor(t)

	records := []models.ResearchRecord{
		researchRecord("student-1", "goat-1", 60, 24*time.Hour),
		researchRecord("student-1", "goat-1", 65, 12*time.Hour),
		researchRecord("student-2", "goat-2", 70, 24*time.Hour),
		researchRecord("student-2", "goat-2", 72, 12*time.Hour),
		researchRecord("student-3", "goat-3", 80, 24*time.Hour),
		researchRecord("student-3", "goat-3", 84, 12*time.Hour),
	}

	result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Quality.Completeness)
	assert.Equal(t, 100.0, result.Quality.Accuracy)
	assert.Equal(t, 100.0, result.Quality.Consistency)
	assert.Equal(t, 100.0, result.Quality.Timeliness)

	assert.True(t, result.Compliance.Anonymized)
	assert.True(t, result.Compliance.ConsentVerified)
	assert.True(t, result.Compliance.MinimumCohort)

	assert.Equal(t, 6, result.RecordCount)
	require.Len(t, exporter.exported, 1)
}

func TestProcessResearchDataWorkflow_QualityPenalties(t *testing.T) {
	processor, _ := createTestResearchProcessor(t)

	stale := researchRecord("student-1", "goat-1", 60, 365*24*time.Hour)
	negative := researchRecord("student-2", "goat-2", -5, 12*time.Hour)
	incomplete := researchRecord("", "goat-3", 70, 12*time.Hour)
	clean := researchRecord("student-4", "goat-4", 70, 12*time.Hour)

	result, err := processor.ProcessResearchDataWorkflow(
		context.Background(), "weight",
		[]models.ResearchRecord{stale, negative, incomplete, clean})
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.Quality.Completeness)
	assert.Equal(t, 75.0, result.Quality.Accuracy)
	assert.Equal(t, 75.0, result.Quality.Timeliness)
	// Every animal id appears exactly once, so nothing recurs.
	assert.Equal(t, 0.0, result.Quality.Consistency)
}

func TestProcessResearchDataWorkflow_Anonymization(t *testing.T) {
	processor, exporter := createTestResearchProcessor(t)

	records := []models.ResearchRecord{
		researchRecord("student-1", "goat-1", 60, 24*time.Hour),
		researchRecord("student-1", "goat-1", 65, 12*time.Hour),
		researchRecord("student-2", "goat-2", 70, 12*time.Hour),
		researchRecord("student-3", "goat-3", 80, 12*time.Hour),
	}

	result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.NoError(t, err)

	for _, r := range result.Records {
		assert.NotEqual(t, "student-1", r.UserID)
		assert.NotContains(t, []string{"goat-1", "goat-2", "goat-3"}, r.AnimalID)
		assert.Len(t, r.AnimalID, 12)
	}

	// The same input id always maps to the same pseudonym.
	assert.Equal(t, result.Records[0].AnimalID, result.Records[1].AnimalID)
	assert.NotEqual(t, result.Records[0].AnimalID, result.Records[2].AnimalID)

	// The exported copy carries pseudonyms, never raw ids.
	require.Len(t, exporter.exported, 1)
	assert.Equal(t, result.Records, exporter.exported[0].Records)
}

func TestProcessResearchDataWorkflow_ComplianceFlags(t *testing.T) {
	processor, _ := createTestResearchProcessor(t)

	t.Run("cohort below minimum", func(t *testing.T) {
		records := []models.ResearchRecord{
			researchRecord("student-1", "goat-1", 60, time.Hour),
			researchRecord("student-2", "goat-2", 70, time.Hour),
		}
		result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
		require.NoError(t, err)
		assert.False(t, result.Compliance.MinimumCohort)
	})

	t.Run("missing consent", func(t *testing.T) {
		withheld := researchRecord("student-1", "goat-1", 60, time.Hour)
		withheld.Fields["consent"] = false
		records := []models.ResearchRecord{
			withheld,
			researchRecord("student-2", "goat-2", 70, time.Hour),
			researchRecord("student-3", "goat-3", 80, time.Hour),
		}
		result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
		require.NoError(t, err)
		assert.False(t, result.Compliance.ConsentVerified)
		assert.True(t, result.Compliance.MinimumCohort)
	})
}

func TestProcessResearchDataWorkflow_Aggregates(t *testing.T) {
	processor, _ := createTestResearchProcessor(t)

	records := []models.ResearchRecord{
		researchRecord("student-1", "goat-1", 60, time.Hour),
		researchRecord("student-2", "goat-2", 70, time.Hour),
		researchRecord("student-3", "goat-3", 80, time.Hour),
	}
	records[0].Fields["cost"] = 1.5

	result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.NoError(t, err)

	// Sorted by field name; booleans are not aggregated.
	require.Len(t, result.Aggregates, 2)

	cost := result.Aggregates[0]
	assert.Equal(t, "cost", cost.Field)
	assert.Equal(t, 1, cost.Count)

	weight := result.Aggregates[1]
	assert.Equal(t, "weight", weight.Field)
	assert.Equal(t, 3, weight.Count)
	assert.Equal(t, 70.0, weight.Mean)
	assert.Equal(t, 60.0, weight.Min)
	assert.Equal(t, 80.0, weight.Max)
}

func TestProcessResearchDataWorkflow_ExportFailure(t *testing.T) {
	processor, exporter := createTestResearchProcessor(t)
	exporter.fail = fmt.Errorf("index unavailable")

	records := []models.ResearchRecord{
		researchRecord("student-1", "goat-1", 60, time.Hour),
	}

	result, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, errors.ErrCodeExportFailed, errors.AsStandardError(err).Code)
}

func TestQualityScores_Deterministic(t *testing.T) {
	processor, _ := createTestResearchProcessor(t)

	records := []models.ResearchRecord{
		researchRecord("student-1", "goat-1", 60, time.Hour),
		researchRecord("student-1", "goat-1", 65, 2*time.Hour),
		researchRecord("student-2", "goat-2", 70, time.Hour),
	}

	first, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.NoError(t, err)
	second, err := processor.ProcessResearchDataWorkflow(context.Background(), "weight", records)
	require.NoError(t, err)

	assert.Equal(t, first.Quality, second.Quality)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Aggregates, second.Aggregates)
}
