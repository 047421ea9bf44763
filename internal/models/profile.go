// internal/models/profile.go
package models

import "time"

// SessionRecord describes one orchestrated update activity.
type SessionRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	AnimalID   string    `json:"animalId"`
	UpdateType string    `json:"updateType"` // feed, weight, photo
	StartedAt  time.Time `json:"startedAt"`
}

// ComprehensiveAnimalProfile is the merged read-model for one animal.
type ComprehensiveAnimalProfile struct {
	Animal          AnimalRef                `json:"animal"`
	LatestFCR       *FCRResult               `json:"latestFcr,omitempty"`
	LatestVisual    *VisualCorrelationResult `json:"latestVisual,omitempty"`
	LatestPredicted *GrowthPrediction        `json:"latestPrediction,omitempty"`
	TotalFeedCost   float64                  `json:"totalFeedCost"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// DashboardAlert is one attention item on the dashboard read-model.
type DashboardAlert struct {
	AnimalID string `json:"animalId,omitempty"`
	Severity string `json:"severity"` // info, warning, critical
	Message  string `json:"message"`
}

// AggregatePerformance summarizes all animals for one user.
type AggregatePerformance struct {
	AnimalCount     int     `json:"animalCount"`
	MeanFCR         float64 `json:"meanFcr"`
	TotalInvestment float64 `json:"totalInvestment"`
	EstimatedROI    float64 `json:"estimatedRoi"` // placeholder until sale data exists
}

// PersonalizedDashboard is the per-user read-model handed to presentation.
type PersonalizedDashboard struct {
	UserID      string                       `json:"userId"`
	Profiles    []ComprehensiveAnimalProfile `json:"profiles"`
	Performance AggregatePerformance         `json:"performance"`
	Alerts      []DashboardAlert             `json:"alerts"`
	Welcome     string                       `json:"welcome,omitempty"` // set on the empty-state dashboard
	GeneratedAt time.Time                    `json:"generatedAt"`
}
