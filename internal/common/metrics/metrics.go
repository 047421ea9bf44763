// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_analyses_completed_total",
			Help: "Total number of analytics computations completed",
		},
		[]string{"analysis_type"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_analyses_failed_total",
			Help: "Total number of analytics computations failed",
		},
		[]string{"analysis_type", "error_code"},
	)

	TriggersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_triggers_processed_total",
			Help: "Total number of workflow triggers processed",
		},
		[]string{"trigger_type"},
	)

	TriggersDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_triggers_dropped_total",
			Help: "Total number of triggers dropped for unknown trigger kinds",
		},
		[]string{"trigger_type"},
	)

	RuleActionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_rule_actions_total",
			Help: "Total number of rule actions executed by outcome",
		},
		[]string{"action_type", "outcome"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "workflow_action_duration_seconds",
			Help: "Duration of rule action execution in seconds",
		},
		[]string{"action_type"},
	)

	InterventionsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interventions_delivered_total",
			Help: "Total number of educational interventions handed to delivery",
		},
		[]string{"method"},
	)
)
