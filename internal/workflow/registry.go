// internal/workflow/registry.go
package workflow

import "livestock-engine/internal/models"

// triggerRoutes is the fixed routing table from trigger kind to workflow id.
// Trigger kinds without an entry are dropped with a warning rather than
// treated as errors.
var triggerRoutes = map[models.TriggerType]string{
	models.TriggerFeedEntry:            "feed-intake-check",
	models.TriggerWeightChange:         "weight-progress",
	models.TriggerPhotoAnalysis:        "photo-review",
	models.TriggerFCRCalculation:       "feed-performance-alert",
	models.TriggerEducationalMilestone: "milestone-recognition",
	models.TriggerPerformanceAlert:     "performance-escalation",
}

// DefaultWorkflows returns the built-in workflow set. Deployments can extend
// or replace these through the registry file loader in pkg/registry.
func DefaultWorkflows() []models.Workflow {
	return []models.Workflow{
		{
			ID:   "feed-performance-alert",
			Name: "Feed Performance Alert",
			Rules: []models.WorkflowRule{
				{
					ID: "fcr-above-threshold",
					Conditions: []models.Condition{
						{Field: "fcr", Operator: models.OpGreaterThan, Value: 7.0},
					},
					Action: models.ActionNotify,
					Config: map[string]interface{}{
						"subject": "Feed conversion needs attention",
						"body":    "Recent feed conversion ratio is above the healthy range. Review ration and feeding schedule.",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestDashboard, Format: models.FormatText},
					},
				},
			},
		},
		{
			ID:   "feed-intake-check",
			Name: "Feed Intake Check",
			Rules: []models.WorkflowRule{
				{
					ID: "feed-logged-analyze",
					Conditions: []models.Condition{
						{Field: "amount", Operator: models.OpGreaterThan, Value: 0.0},
					},
					Action: models.ActionAnalyze,
					Config: map[string]interface{}{
						"analysis": "fcr",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestDashboard, Format: models.FormatJSON},
					},
				},
			},
		},
		{
			ID:   "weight-progress",
			Name: "Weight Progress",
			Rules: []models.WorkflowRule{
				{
					ID: "weight-decline-intervene",
					Conditions: []models.Condition{
						{Field: "deltaPercent", Operator: models.OpLessThan, Value: -5.0},
					},
					Action: models.ActionIntervene,
					Config: map[string]interface{}{
						"template": "declining-weight",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestEmail, Format: models.FormatText},
					},
				},
			},
		},
		{
			ID:   "photo-review",
			Name: "Photo Review",
			Rules: []models.WorkflowRule{
				{
					ID: "low-bcs-recommend",
					Conditions: []models.Condition{
						{Field: "bcs", Operator: models.OpLessThan, Value: 3.0},
					},
					Action: models.ActionRecommend,
					Config: map[string]interface{}{
						"focus": "growth",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestDashboard, Format: models.FormatText},
					},
				},
			},
		},
		{
			ID:   "milestone-recognition",
			Name: "Milestone Recognition",
			Rules: []models.WorkflowRule{
				{
					ID: "milestone-notify",
					Conditions: []models.Condition{
						{Field: "milestone", Operator: models.OpExists},
					},
					Action: models.ActionNotify,
					Config: map[string]interface{}{
						"subject": "Milestone reached",
						"body":    "Great work. A project milestone was just completed.",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestDashboard, Format: models.FormatText},
					},
				},
			},
		},
		{
			ID:   "performance-escalation",
			Name: "Performance Escalation",
			Rules: []models.WorkflowRule{
				{
					ID: "alert-intervene",
					Conditions: []models.Condition{
						{Field: "metric", Operator: models.OpExists},
					},
					Action: models.ActionIntervene,
					Config: map[string]interface{}{
						"template": "performance-alert",
					},
					Outputs: []models.RuleOutput{
						{Destination: models.DestEmail, Format: models.FormatText},
						{Destination: models.DestDashboard, Format: models.FormatText},
					},
				},
			},
		},
	}
}
