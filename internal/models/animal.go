// internal/models/animal.go
package models

import "time"

// AnimalRef identifies a livestock animal. Owned by the animal-management
// collaborator; the engines only read it.
type AnimalRef struct {
	ID            string    `json:"id"`
	Species       string    `json:"species"`
	Breed         string    `json:"breed"`
	BirthDate     time.Time `json:"birthDate"`
	CurrentWeight float64   `json:"currentWeight"`
}

// WeightObservation is a single body-weight measurement. Immutable once
// stored.
type WeightObservation struct {
	AnimalID           string    `json:"animalId"`
	Weight             float64   `json:"weight"` // lb, positive
	Timestamp          time.Time `json:"timestamp"`
	MeasurementMethod  string    `json:"measurementMethod"`
	BodyConditionScore float64   `json:"bodyConditionScore,omitempty"` // 1-9, 0 when absent
	Confidence         float64   `json:"confidence,omitempty"`         // 0-100, 0 when absent
}

// FeedObservation is a single feed-intake record.
type FeedObservation struct {
	AnimalID      string    `json:"animalId"`
	FeedProductID string    `json:"feedProductId"`
	Amount        float64   `json:"amount"` // lb, positive
	Cost          float64   `json:"cost"`   // non-negative
	Timestamp     time.Time `json:"timestamp"`
	FeedingMethod string    `json:"feedingMethod"`
}

// FeedProductProfile is a catalog entry with nutritional and benchmark data.
// Read-only reference data for the engines.
type FeedProductProfile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Species         string  `json:"species"` // empty means species-agnostic
	Protein         float64 `json:"protein"` // percent
	Fat             float64 `json:"fat"`
	Fiber           float64 `json:"fiber"`
	ReferenceFCR    float64 `json:"referenceFcr"`
	ReferenceGain   float64 `json:"referenceGain"` // lb/day
	CostPerPound    float64 `json:"costPerPound"`
	EfficiencyScore float64 `json:"efficiencyScore"` // 0-100
}
