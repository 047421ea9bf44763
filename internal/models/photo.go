// internal/models/photo.go
package models

import "time"

// IndicatorSeverity grades a health indicator.
type IndicatorSeverity string

const (
	SeverityNormal   IndicatorSeverity = "normal"
	SeverityMild     IndicatorSeverity = "mild"
	SeverityModerate IndicatorSeverity = "moderate"
	SeveritySevere   IndicatorSeverity = "severe"
)

// HealthIndicator is one scored observation from the vision step.
type HealthIndicator struct {
	Type     string            `json:"type"`
	Score    float64           `json:"score"` // 1-10
	Severity IndicatorSeverity `json:"severity"`
}

// GrowthAssessment summarizes frame and composition from a photo.
type GrowthAssessment struct {
	FrameSize   string  `json:"frameSize"`
	MuscleScore float64 `json:"muscleScore"`
	FatScore    float64 `json:"fatScore"`
	GrowthStage string  `json:"growthStage"`
}

// FeedImpactScore rates how visibly feeding shows in the photo. All scores
// 0-100.
type FeedImpactScore struct {
	CoatCondition   float64 `json:"coatCondition"`
	BodyFill        float64 `json:"bodyFill"`
	MuscleExpr      float64 `json:"muscleExpression"`
	EnergyIndicator float64 `json:"energyIndicator"`
	Overall         float64 `json:"overall"`
}

// PhotoObservation is the output of the vision inference step; the engines
// treat it as input.
type PhotoObservation struct {
	AnimalID           string            `json:"animalId"`
	CapturedAt         time.Time         `json:"capturedAt"`
	BodyConditionScore float64           `json:"bodyConditionScore"` // 1-9 continuous
	EstimatedWeight    float64           `json:"estimatedWeight"`    // lb
	HealthIndicators   []HealthIndicator `json:"healthIndicators"`
	GrowthAssessment   GrowthAssessment  `json:"growthAssessment"`
	FeedImpact         FeedImpactScore   `json:"feedImpact"`
}

// BodyConditionResult is the body-condition contract at the vision seam.
type BodyConditionResult struct {
	AnimalID         string  `json:"animalId"`
	Score            float64 `json:"score"` // 1-9
	RibCoverage      float64 `json:"ribCoverage"`
	SpinalCoverage   float64 `json:"spinalCoverage"`
	ShoulderCoverage float64 `json:"shoulderCoverage"`
	RumpCoverage     float64 `json:"rumpCoverage"`
	Confidence       float64 `json:"confidence"` // 0-100
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
