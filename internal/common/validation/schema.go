// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// triggerSchemas maps each trigger kind to the JSON schema its flattened
// payload fields must satisfy. Extra fields are allowed everywhere; the open
// map is part of the trigger contract.
var triggerSchemas = map[models.TriggerType]map[string]interface{}{
	models.TriggerFeedEntry: {
		"type":     "object",
		"required": []string{"feedProductId", "amount"},
		"properties": map[string]interface{}{
			"feedProductId": map[string]interface{}{"type": "string", "minLength": 1},
			"amount":        map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
			"cost":          map[string]interface{}{"type": "number", "minimum": 0},
		},
	},
	models.TriggerWeightChange: {
		"type":     "object",
		"required": []string{"weight"},
		"properties": map[string]interface{}{
			"weight": map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
		},
	},
	models.TriggerPhotoAnalysis: {
		"type":     "object",
		"required": []string{"bcs"},
		"properties": map[string]interface{}{
			"bcs":             map[string]interface{}{"type": "number", "minimum": 1, "maximum": 9},
			"estimatedWeight": map[string]interface{}{"type": "number", "minimum": 0},
		},
	},
	models.TriggerFCRCalculation: {
		"type":     "object",
		"required": []string{"fcr"},
		"properties": map[string]interface{}{
			"fcr":              map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
			"averageDailyGain": map[string]interface{}{"type": "number"},
		},
	},
	models.TriggerEducationalMilestone: {
		"type":     "object",
		"required": []string{"milestone"},
		"properties": map[string]interface{}{
			"milestone": map[string]interface{}{"type": "string", "minLength": 1},
			"progress":  map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		},
	},
	models.TriggerPerformanceAlert: {
		"type":     "object",
		"required": []string{"metric", "value"},
		"properties": map[string]interface{}{
			"metric": map[string]interface{}{"type": "string", "minLength": 1},
			"value":  map[string]interface{}{"type": "number"},
		},
	},
}

// ValidateTrigger checks a trigger's shape and payload against the schema for
// its kind. Unknown kinds pass here; routing decides what to do with them.
func ValidateTrigger(trigger models.WorkflowTrigger) error {
	if trigger.UserID == "" {
		return errors.NewValidationFailedError("trigger userId is required")
	}
	if trigger.Timestamp.IsZero() {
		return errors.NewValidationFailedError("trigger timestamp is required")
	}

	schema, ok := triggerSchemas[trigger.Type]
	if !ok {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(trigger.Payload.Fields())

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewValidationFailedError(fmt.Sprintf("schema validation error: %v", err))
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return errors.NewValidationFailedError(strings.Join(problems, "; "))
	}

	return nil
}
