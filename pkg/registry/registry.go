// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"livestock-engine/internal/models"
)

// WorkflowRegistry is the on-disk workflow definition file. Deployments use
// it to extend or override the built-in workflow set without a rebuild.
type WorkflowRegistry struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Workflows   []models.Workflow `json:"workflows"`
}

// LoadRegistry reads and validates a workflow registry file.
func LoadRegistry(path string) (*WorkflowRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg WorkflowRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := validateRegistry(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Merge overlays the registry's workflows onto the base set. A registry
// workflow with the same id replaces its built-in counterpart.
func (r *WorkflowRegistry) Merge(base []models.Workflow) []models.Workflow {
	byID := make(map[string]int, len(base))
	out := make([]models.Workflow, len(base))
	copy(out, base)
	for i, wf := range out {
		byID[wf.ID] = i
	}
	for _, wf := range r.Workflows {
		if i, ok := byID[wf.ID]; ok {
			out[i] = wf
			continue
		}
		byID[wf.ID] = len(out)
		out = append(out, wf)
	}
	return out
}

func validateRegistry(reg *WorkflowRegistry) error {
	seen := make(map[string]struct{})
	for _, wf := range reg.Workflows {
		if wf.ID == "" {
			return fmt.Errorf("registry workflow with empty id")
		}
		if _, dup := seen[wf.ID]; dup {
			return fmt.Errorf("duplicate workflow id %q in registry", wf.ID)
		}
		seen[wf.ID] = struct{}{}

		for _, rule := range wf.Rules {
			if rule.ID == "" {
				return fmt.Errorf("workflow %q has a rule with empty id", wf.ID)
			}
			if !validAction(rule.Action) {
				return fmt.Errorf("workflow %q rule %q has unknown action %q", wf.ID, rule.ID, rule.Action)
			}
			for _, c := range rule.Conditions {
				if !validOperator(c.Operator) {
					return fmt.Errorf("workflow %q rule %q has unknown operator %q", wf.ID, rule.ID, c.Operator)
				}
			}
		}
	}
	return nil
}

func validAction(a models.ActionType) bool {
	switch a {
	case models.ActionNotify, models.ActionRecommend, models.ActionAnalyze,
		models.ActionReport, models.ActionIntervene, models.ActionCallAPI:
		return true
	}
	return false
}

func validOperator(op models.ConditionOperator) bool {
	switch op {
	case models.OpEquals, models.OpNotEquals, models.OpGreaterThan,
		models.OpLessThan, models.OpContains, models.OpExists:
		return true
	}
	return false
}
