// internal/models/visual.go
package models

import "time"

// Trend classifies how a visual metric moved over the photo series.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendDeclining    Trend = "declining"
	TrendStable       Trend = "stable"
	TrendAboveAverage Trend = "above-average"
	TrendBelowAverage Trend = "below-average"
)

// FeedEffectiveness is a composite of four sub-scores, each 0-100.
type FeedEffectiveness struct {
	CoatCondition float64 `json:"coatCondition"`
	BodyFill      float64 `json:"bodyFill"`
	MuscleExpr    float64 `json:"muscleExpression"`
	Energy        float64 `json:"energy"`
	Overall       float64 `json:"overall"`
}

// VisualCorrelationResult relates a photo series to feed history.
type VisualCorrelationResult struct {
	AnimalID            string            `json:"animalId"`
	CorrelationStrength float64           `json:"correlationStrength"` // 0-100
	BodyConditionTrend  Trend             `json:"bodyConditionTrend"`
	HealthTrend         Trend             `json:"healthTrend"`
	GrowthTrend         Trend             `json:"growthTrend"`
	FeedEffectiveness   FeedEffectiveness `json:"feedEffectiveness"`
	Insights            []string          `json:"insights"`
	Recommendations     []string          `json:"recommendations"`
}

// PredictionPoint is one forward projection.
type PredictionPoint struct {
	HorizonDays   int     `json:"horizonDays"`
	Weight        float64 `json:"weight"`
	BodyCondition float64 `json:"bodyCondition"`
	Confidence    float64 `json:"confidence"` // decays with horizon
}

// GrowthPrediction extrapolates weight and condition from photos.
type GrowthPrediction struct {
	AnimalID      string            `json:"animalId"`
	CurrentWeight float64           `json:"currentWeight"`
	CurrentBCS    float64           `json:"currentBcs"`
	Projections   []PredictionPoint `json:"projections"` // 30/60/90 days
	GrowthRateDay float64           `json:"growthRatePerDay"`
	ConditionRate float64           `json:"conditionRatePerDay"`
	BasedOnPhotos int               `json:"basedOnPhotos"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}

// PhotoProgressionEntry is one step of the report's photo timeline.
type PhotoProgressionEntry struct {
	CapturedAt      time.Time `json:"capturedAt"`
	BCS             float64   `json:"bcs"`
	EstimatedWeight float64   `json:"estimatedWeight"`
}

// FeedProgressionEntry is one step of the report's feed timeline.
type FeedProgressionEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	FeedProductID string    `json:"feedProductId"`
	Amount        float64   `json:"amount"`
	Cost          float64   `json:"cost"`
}

// VisualFeedReport is the time-windowed aggregate over an animal's photos and
// feeds.
type VisualFeedReport struct {
	AnimalID         string                  `json:"animalId"`
	PeriodStart      time.Time               `json:"periodStart"`
	PeriodEnd        time.Time               `json:"periodEnd"`
	PhotoProgression []PhotoProgressionEntry `json:"photoProgression"`
	FeedProgression  []FeedProgressionEntry  `json:"feedProgression"`
	Correlation      VisualCorrelationResult `json:"correlation"`
	Prediction       *GrowthPrediction       `json:"prediction,omitempty"`
	GeneratedAt      time.Time               `json:"generatedAt"`
}
