// internal/workflow/engine.go
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/common/metrics"
	"livestock-engine/internal/common/validation"
	"livestock-engine/internal/models"
)

// Engine routes typed triggers to registered workflows and executes their
// rules. The workflow registry is fixed after construction. Execution history
// is an in-memory, append-only log per workflow; it is written with
// last-write-wins semantics and the engine expects a single-goroutine caller.
// Concurrent callers must serialize externally.
type Engine struct {
	config    *Config
	workflows map[string]models.Workflow
	executor  *Executor
	history   map[string][]models.WorkflowExecutionRecord
	logger    logger.Logger
}

func NewEngine(cfg *Config, workflows []models.Workflow, executor *Executor, log logger.Logger) *Engine {
	byID := make(map[string]models.Workflow, len(workflows))
	for _, wf := range workflows {
		byID[wf.ID] = wf
	}
	return &Engine{
		config:    cfg,
		workflows: byID,
		executor:  executor,
		history:   make(map[string][]models.WorkflowExecutionRecord),
		logger:    log,
	}
}

// TriggerWorkflow validates the trigger, routes it to its workflow, and runs
// every rule whose conditions all hold. A failing rule is recorded and does
// not stop later rules. Triggers with an unknown kind are dropped with a
// warning and return no record. The returned record is also appended to the
// workflow's history.
func (e *Engine) TriggerWorkflow(ctx context.Context, trigger models.WorkflowTrigger) (*models.WorkflowExecutionRecord, error) {
	if trigger.ID == "" {
		trigger.ID = uuid.NewString()
	}

	if err := validation.ValidateTrigger(trigger); err != nil {
		e.logger.Error("trigger failed validation", map[string]interface{}{
			"trigger_id":   trigger.ID,
			"trigger_type": string(trigger.Type),
			"error":        err.Error(),
		})
		return nil, err
	}

	workflowID, ok := triggerRoutes[trigger.Type]
	if !ok {
		e.logger.Warn("dropping trigger with unknown kind", map[string]interface{}{
			"trigger_id":   trigger.ID,
			"trigger_type": string(trigger.Type),
		})
		metrics.TriggersDropped.WithLabelValues(string(trigger.Type)).Inc()
		return nil, nil
	}

	workflow, ok := e.workflows[workflowID]
	if !ok {
		e.logger.Warn("trigger routed to unregistered workflow, dropping", map[string]interface{}{
			"trigger_id":  trigger.ID,
			"workflow_id": workflowID,
		})
		metrics.TriggersDropped.WithLabelValues(string(trigger.Type)).Inc()
		return nil, nil
	}

	record := &models.WorkflowExecutionRecord{
		ID:         uuid.NewString(),
		WorkflowID: workflow.ID,
		Trigger:    trigger,
		State:      models.StateReceived,
		ExecutedAt: time.Now().UTC(),
	}

	fields := trigger.Payload.Fields()
	record.State = models.StateConditionsEvaluated

	executed := 0
	for _, rule := range workflow.Rules {
		result := e.runRule(ctx, rule, trigger, fields)
		record.RuleResults = append(record.RuleResults, result)
		if result.ConditionsMet {
			executed++
		}
	}

	if executed > 0 {
		record.State = models.StateActionsExecuted
	} else {
		record.State = models.StateSkipped
	}

	e.appendHistory(workflow.ID, record)
	record.State = models.StateRecorded
	metrics.TriggersProcessed.WithLabelValues(string(trigger.Type)).Inc()

	e.logger.Info("workflow execution recorded", map[string]interface{}{
		"workflow_id":    workflow.ID,
		"trigger_id":     trigger.ID,
		"rules_total":    len(workflow.Rules),
		"rules_executed": executed,
	})

	return record, nil
}

// runRule evaluates one rule and, when its conditions hold, executes its
// action under the configured timeout. Action failures are captured in the
// result instead of propagating.
func (e *Engine) runRule(ctx context.Context, rule models.WorkflowRule, trigger models.WorkflowTrigger, fields map[string]interface{}) models.RuleResult {
	result := models.RuleResult{
		RuleID: rule.ID,
		Action: rule.Action,
	}

	if !EvaluateConditions(rule.Conditions, fields) {
		return result
	}
	result.ConditionsMet = true

	actionCtx := ctx
	if e.config.ActionTimeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, e.config.ActionTimeout)
		defer cancel()
	}

	start := time.Now()
	payload, err := e.executor.Execute(actionCtx, rule, trigger)
	metrics.ActionDuration.WithLabelValues(string(rule.Action)).Observe(time.Since(start).Seconds())

	if err != nil {
		result.Error = err.Error()
		metrics.RuleActionsExecuted.WithLabelValues(string(rule.Action), "failure").Inc()
		e.logger.Error("rule action failed", map[string]interface{}{
			"rule_id":     rule.ID,
			"action_type": string(rule.Action),
			"trigger_id":  trigger.ID,
			"error":       err.Error(),
		})
		return result
	}

	result.Success = true
	result.ResultPayload = payload
	metrics.RuleActionsExecuted.WithLabelValues(string(rule.Action), "success").Inc()
	return result
}

func (e *Engine) appendHistory(workflowID string, record *models.WorkflowExecutionRecord) {
	entries := append(e.history[workflowID], *record)
	if limit := e.config.HistoryLimit; limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	e.history[workflowID] = entries
}

// ExecutionHistory returns a copy of the retained executions for a workflow,
// oldest first.
func (e *Engine) ExecutionHistory(workflowID string) []models.WorkflowExecutionRecord {
	entries := e.history[workflowID]
	out := make([]models.WorkflowExecutionRecord, len(entries))
	copy(out, entries)
	return out
}

// Workflows lists the registered workflow ids.
func (e *Engine) Workflows() []string {
	ids := make([]string, 0, len(e.workflows))
	for id := range e.workflows {
		ids = append(ids, id)
	}
	return ids
}
