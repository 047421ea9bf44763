// internal/models/workflow.go
package models

import "time"

// TriggerType enumerates the domain events that can start a workflow.
type TriggerType string

const (
	TriggerFeedEntry            TriggerType = "feed-entry"
	TriggerWeightChange         TriggerType = "weight-change"
	TriggerPhotoAnalysis        TriggerType = "photo-analysis"
	TriggerFCRCalculation       TriggerType = "fcr-calculation"
	TriggerEducationalMilestone TriggerType = "educational-milestone"
	TriggerPerformanceAlert     TriggerType = "performance-alert"
)

// TriggerPriority orders trigger handling urgency.
type TriggerPriority string

const (
	PriorityLow    TriggerPriority = "low"
	PriorityNormal TriggerPriority = "normal"
	PriorityHigh   TriggerPriority = "high"
	PriorityUrgent TriggerPriority = "urgent"
)

// Typed trigger payloads. One pointer per known trigger kind; Extra is the
// residual open map for genuinely extensible fields.
type FeedEntryPayload struct {
	FeedProductID string  `json:"feedProductId"`
	Amount        float64 `json:"amount"`
	Cost          float64 `json:"cost"`
}

type WeightChangePayload struct {
	Weight       float64 `json:"weight"`
	PrevWeight   float64 `json:"prevWeight,omitempty"`
	DeltaPercent float64 `json:"deltaPercent,omitempty"`
}

type PhotoAnalysisPayload struct {
	BCS             float64 `json:"bcs"`
	EstimatedWeight float64 `json:"estimatedWeight"`
	HealthConcerns  int     `json:"healthConcerns"`
}

type FCRCalculationPayload struct {
	FCR              float64 `json:"fcr"`
	AverageDailyGain float64 `json:"averageDailyGain"`
	Ranking          string  `json:"ranking,omitempty"`
}

type MilestonePayload struct {
	Milestone string `json:"milestone"`
	Progress  int    `json:"progress"`
}

type PerformanceAlertPayload struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// TriggerPayload is a tagged union over the known trigger kinds.
type TriggerPayload struct {
	FeedEntry        *FeedEntryPayload        `json:"feedEntry,omitempty"`
	WeightChange     *WeightChangePayload     `json:"weightChange,omitempty"`
	PhotoAnalysis    *PhotoAnalysisPayload    `json:"photoAnalysis,omitempty"`
	FCRCalculation   *FCRCalculationPayload   `json:"fcrCalculation,omitempty"`
	Milestone        *MilestonePayload        `json:"milestone,omitempty"`
	PerformanceAlert *PerformanceAlertPayload `json:"performanceAlert,omitempty"`
	Extra            map[string]interface{}   `json:"extra,omitempty"`
}

// Fields flattens the populated payload variant into the field map consulted
// by condition evaluation. Extra entries never shadow typed fields.
func (p TriggerPayload) Fields() map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range p.Extra {
		out[k] = v
	}
	switch {
	case p.FeedEntry != nil:
		out["feedProductId"] = p.FeedEntry.FeedProductID
		out["amount"] = p.FeedEntry.Amount
		out["cost"] = p.FeedEntry.Cost
	case p.WeightChange != nil:
		out["weight"] = p.WeightChange.Weight
		out["prevWeight"] = p.WeightChange.PrevWeight
		out["deltaPercent"] = p.WeightChange.DeltaPercent
	case p.PhotoAnalysis != nil:
		out["bcs"] = p.PhotoAnalysis.BCS
		out["estimatedWeight"] = p.PhotoAnalysis.EstimatedWeight
		out["healthConcerns"] = p.PhotoAnalysis.HealthConcerns
	case p.FCRCalculation != nil:
		out["fcr"] = p.FCRCalculation.FCR
		out["averageDailyGain"] = p.FCRCalculation.AverageDailyGain
		out["ranking"] = p.FCRCalculation.Ranking
	case p.Milestone != nil:
		out["milestone"] = p.Milestone.Milestone
		out["progress"] = p.Milestone.Progress
	case p.PerformanceAlert != nil:
		out["metric"] = p.PerformanceAlert.Metric
		out["value"] = p.PerformanceAlert.Value
		out["threshold"] = p.PerformanceAlert.Threshold
	}
	return out
}

// WorkflowTrigger is a typed event routed to a workflow by trigger type.
type WorkflowTrigger struct {
	ID        string          `json:"id"`
	Type      TriggerType     `json:"type"`
	AnimalID  string          `json:"animalId,omitempty"`
	UserID    string          `json:"userId"`
	Payload   TriggerPayload  `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Priority  TriggerPriority `json:"priority"`
}

// ConditionOperator enumerates comparison operators.
type ConditionOperator string

const (
	OpEquals      ConditionOperator = "equals"
	OpNotEquals   ConditionOperator = "not-equals"
	OpGreaterThan ConditionOperator = "greater-than"
	OpLessThan    ConditionOperator = "less-than"
	OpContains    ConditionOperator = "contains"
	OpExists      ConditionOperator = "exists"
)

// Condition compares one payload field against a value. LogicalOperator is
// carried on the wire format but never read: conditions combine with AND
// semantics only.
type Condition struct {
	Field           string            `json:"field"`
	Operator        ConditionOperator `json:"operator"`
	Value           interface{}       `json:"value,omitempty"`
	LogicalOperator string            `json:"logicalOperator,omitempty"`
}

// ActionType enumerates rule action kinds.
type ActionType string

const (
	ActionNotify    ActionType = "notify"
	ActionRecommend ActionType = "recommend"
	ActionAnalyze   ActionType = "analyze"
	ActionReport    ActionType = "report"
	ActionIntervene ActionType = "intervene"
	ActionCallAPI   ActionType = "call-api"
)

// OutputDestination enumerates where a rule output is sent.
type OutputDestination string

const (
	DestEmail     OutputDestination = "email"
	DestSMS       OutputDestination = "sms"
	DestDashboard OutputDestination = "dashboard"
	DestExport    OutputDestination = "export"
)

// OutputFormat enumerates how a rule output is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatHTML OutputFormat = "html"
)

// RuleOutput describes one destination for a rule's result.
type RuleOutput struct {
	Destination OutputDestination      `json:"destination"`
	Format      OutputFormat           `json:"format"`
	TemplateID  string                 `json:"templateId,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// WorkflowRule is one trigger-reaction: ordered conditions plus a typed
// action.
type WorkflowRule struct {
	ID         string                 `json:"id"`
	Action     ActionType             `json:"action"`
	Config     map[string]interface{} `json:"config,omitempty"`
	Conditions []Condition            `json:"conditions"`
	Outputs    []RuleOutput           `json:"outputs,omitempty"`
}

// Workflow is a named, ordered list of rules.
type Workflow struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Rules []WorkflowRule `json:"rules"`
}

// ExecutionState tracks the per-execution state machine.
type ExecutionState string

const (
	StateReceived            ExecutionState = "received"
	StateConditionsEvaluated ExecutionState = "conditions-evaluated"
	StateActionsExecuted     ExecutionState = "actions-executed"
	StateSkipped             ExecutionState = "skipped"
	StateRecorded            ExecutionState = "recorded"
)

// RuleResult records one rule's outcome inside an execution.
type RuleResult struct {
	RuleID        string                 `json:"ruleId"`
	Action        ActionType             `json:"action"`
	ConditionsMet bool                   `json:"conditionsMet"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ResultPayload map[string]interface{} `json:"resultPayload,omitempty"`
}

// WorkflowExecutionRecord is one append-only history entry per trigger.
type WorkflowExecutionRecord struct {
	ID          string          `json:"id"`
	WorkflowID  string          `json:"workflowId"`
	Trigger     WorkflowTrigger `json:"trigger"`
	State       ExecutionState  `json:"state"`
	RuleResults []RuleResult    `json:"ruleResults"`
	ExecutedAt  time.Time       `json:"executedAt"`
}
