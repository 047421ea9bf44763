// internal/workflow/conditions_test.go
package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"livestock-engine/internal/models"
)

func TestEvaluateCondition_Operators(t *testing.T) {
	fields := map[string]interface{}{
		"fcr":     8.5,
		"ranking": "below-average",
		"weight":  90,
	}

	tests := []struct {
		name      string
		condition models.Condition
		expected  bool
	}{
		{
			"equals matches string",
			models.Condition{Field: "ranking", Operator: models.OpEquals, Value: "below-average"},
			true,
		},
		{
			"equals rejects different string",
			models.Condition{Field: "ranking", Operator: models.OpEquals, Value: "good"},
			false,
		},
		{
			"not-equals",
			models.Condition{Field: "ranking", Operator: models.OpNotEquals, Value: "good"},
			true,
		},
		{
			"greater-than passes",
			models.Condition{Field: "fcr", Operator: models.OpGreaterThan, Value: 7.0},
			true,
		},
		{
			"greater-than is strict",
			models.Condition{Field: "fcr", Operator: models.OpGreaterThan, Value: 8.5},
			false,
		},
		{
			"less-than passes",
			models.Condition{Field: "fcr", Operator: models.OpLessThan, Value: 10.0},
			true,
		},
		{
			"contains on strings",
			models.Condition{Field: "ranking", Operator: models.OpContains, Value: "below"},
			true,
		},
		{
			"exists for present field",
			models.Condition{Field: "weight", Operator: models.OpExists},
			true,
		},
		{
			"exists for missing field",
			models.Condition{Field: "bcs", Operator: models.OpExists},
			false,
		},
		{
			"missing field fails comparison",
			models.Condition{Field: "bcs", Operator: models.OpGreaterThan, Value: 1.0},
			false,
		},
		{
			"unknown operator fails closed",
			models.Condition{Field: "fcr", Operator: "matches", Value: 8.5},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, evaluateCondition(tt.condition, fields))
		})
	}
}

func TestEvaluateCondition_NumericCoercion(t *testing.T) {
	// JSON decoding and typed payloads disagree on number types; comparisons
	// must not care.
	fields := map[string]interface{}{"progress": 100}

	assert.True(t, evaluateCondition(models.Condition{
		Field: "progress", Operator: models.OpEquals, Value: 100.0,
	}, fields))
	assert.True(t, evaluateCondition(models.Condition{
		Field: "progress", Operator: models.OpGreaterThan, Value: int64(99),
	}, fields))
	assert.False(t, evaluateCondition(models.Condition{
		Field: "progress", Operator: models.OpGreaterThan, Value: "99"},
		fields))
}

func TestEvaluateConditions_AndSemanticsOnly(t *testing.T) {
	fields := map[string]interface{}{"fcr": 8.5, "weight": 90.0}

	passing := models.Condition{Field: "fcr", Operator: models.OpGreaterThan, Value: 7.0}
	failing := models.Condition{Field: "weight", Operator: models.OpLessThan, Value: 50.0}

	assert.True(t, EvaluateConditions(nil, fields))
	assert.True(t, EvaluateConditions([]models.Condition{passing}, fields))
	assert.False(t, EvaluateConditions([]models.Condition{passing, failing}, fields))

	// The stored logicalOperator never relaxes the conjunction.
	failing.LogicalOperator = "OR"
	passing.LogicalOperator = "OR"
	assert.False(t, EvaluateConditions([]models.Condition{passing, failing}, fields))
}
