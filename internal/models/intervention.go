// internal/models/intervention.go
package models

import "time"

// GuidanceContext is the input to the guidance provider.
type GuidanceContext struct {
	StudentID string                 `json:"studentId"`
	Topic     string                 `json:"topic"`
	AnimalID  string                 `json:"animalId,omitempty"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// MentorResponse is what the guidance provider returns. Fallible and slow;
// treat accordingly.
type MentorResponse struct {
	Advice     string   `json:"advice"`
	Resources  []string `json:"resources,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// EducationalIntervention is a structured follow-up generated from a trigger.
// The engines construct the record and hand it to delivery; monitoring is the
// scheduler collaborator's job.
type EducationalIntervention struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	TriggerName    string    `json:"triggerName"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ActionItems    []string  `json:"actionItems"`
	Resources      []string  `json:"resources"`
	Timeline       string    `json:"timeline"`
	DeliveryMethod string    `json:"deliveryMethod"` // email, sms, dashboard
	Timing         string    `json:"timing"`         // immediate, scheduled
	Frequency      string    `json:"frequency"`      // once, weekly
	FollowUpAt     time.Time `json:"followUpAt"`
	CreatedAt      time.Time `json:"createdAt"`
}
