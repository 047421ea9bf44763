// internal/workflow/conditions.go
package workflow

import (
	"fmt"
	"strings"

	"livestock-engine/internal/models"
)

// EvaluateConditions combines a rule's conditions with AND semantics only.
// The per-condition LogicalOperator field is part of the stored rule format
// but is deliberately never read; see the condition grammar note in
// DESIGN.md.
func EvaluateConditions(conditions []models.Condition, fields map[string]interface{}) bool {
	for _, c := range conditions {
		if !evaluateCondition(c, fields) {
			return false
		}
	}
	return true
}

func evaluateCondition(c models.Condition, fields map[string]interface{}) bool {
	value, present := fields[c.Field]

	switch c.Operator {
	case models.OpExists:
		return present

	case models.OpEquals:
		if !present {
			return false
		}
		return compareEqual(value, c.Value)

	case models.OpNotEquals:
		if !present {
			return false
		}
		return !compareEqual(value, c.Value)

	case models.OpGreaterThan:
		a, aok := toFloat(value)
		b, bok := toFloat(c.Value)
		return present && aok && bok && a > b

	case models.OpLessThan:
		a, aok := toFloat(value)
		b, bok := toFloat(c.Value)
		return present && aok && bok && a < b

	case models.OpContains:
		if !present {
			return false
		}
		return strings.Contains(asString(value), asString(c.Value))

	default:
		return false
	}
}

func compareEqual(a, b interface{}) bool {
	// Numeric values compare numerically so 7 equals 7.0 regardless of how
	// JSON decoding typed them.
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return asString(a) == asString(b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
