// internal/models/fcr.go
package models

import "time"

// PerformanceRanking classifies actual FCR against the benchmark.
type PerformanceRanking string

const (
	RankingExcellent    PerformanceRanking = "excellent"
	RankingGood         PerformanceRanking = "good"
	RankingAverage      PerformanceRanking = "average"
	RankingBelowAverage PerformanceRanking = "below-average"
	RankingPoor         PerformanceRanking = "poor"
)

// BenchmarkComparison relates a computed FCR to reference values.
type BenchmarkComparison struct {
	BenchmarkFCR    float64            `json:"benchmarkFcr"`
	IndustryAverage float64            `json:"industryAverage"`
	SpeciesAverage  float64            `json:"speciesAverage"`
	BreedAverage    float64            `json:"breedAverage"`
	Ranking         PerformanceRanking `json:"ranking"`
}

// FCRResult is the output of one feed-conversion analysis. Created once per
// call, immutable, retained in the per-animal history.
type FCRResult struct {
	AnimalID          string              `json:"animalId"`
	FeedProductID     string              `json:"feedProductId"`
	PeriodStart       time.Time           `json:"periodStart"`
	PeriodEnd         time.Time           `json:"periodEnd"`
	FCR               float64             `json:"fcr"`
	AverageDailyGain  float64             `json:"averageDailyGain"` // lb/day
	FeedEfficiency    float64             `json:"feedEfficiency"`   // 1/FCR
	CostPerPoundGain  float64             `json:"costPerPoundGain"`
	TotalFeedConsumed float64             `json:"totalFeedConsumed"`
	TotalWeightGained float64             `json:"totalWeightGained"`
	TotalCost         float64             `json:"totalCost"`
	ElapsedDays       int                 `json:"elapsedDays"`
	Benchmark         BenchmarkComparison `json:"benchmark"`
	Recommendations   []string            `json:"recommendations"`
	ComputedAt        time.Time           `json:"computedAt"`
}

// FeedAnalysis scores how a specific feed product performed for an animal.
type FeedAnalysis struct {
	AnimalID         string   `json:"animalId"`
	FeedProductID    string   `json:"feedProductId"`
	PerformanceScore float64  `json:"performanceScore"` // 0-100
	ActualFCR        float64  `json:"actualFcr,omitempty"`
	ReferenceFCR     float64  `json:"referenceFcr"`
	ActualUnitCost   float64  `json:"actualUnitCost"`
	CatalogUnitCost  float64  `json:"catalogUnitCost"`
	Notes            []string `json:"notes,omitempty"`
}

// GoalProfile describes what the caller wants a feed optimized for.
type GoalProfile struct {
	FocusAreas   []string `json:"focusAreas"` // growth, efficiency, cost, health
	TargetWeight float64  `json:"targetWeight,omitempty"`
	BudgetPerDay float64  `json:"budgetPerDay,omitempty"`
}

// FeedRecommendation wraps the top-scoring catalog product with a rollout
// plan.
type FeedRecommendation struct {
	AnimalID       string             `json:"animalId"`
	Product        FeedProductProfile `json:"product"`
	Score          float64            `json:"score"`
	Checklist      []string           `json:"checklist"`
	MonitoringPlan []string           `json:"monitoringPlan"` // week-by-week, 1-3 weeks
}
