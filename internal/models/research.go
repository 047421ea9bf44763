// internal/models/research.go
package models

import "time"

// ResearchRecord is one anonymizable record fed to the research workflow.
type ResearchRecord struct {
	UserID    string                 `json:"userId"`
	AnimalID  string                 `json:"animalId"`
	DataType  string                 `json:"dataType"`
	Fields    map[string]interface{} `json:"fields"`
	Timestamp time.Time              `json:"timestamp"`
}

// DataQualityScores are deterministic functions of the input record set, each
// 0-100.
type DataQualityScores struct {
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
	Consistency  float64 `json:"consistency"`
	Timeliness   float64 `json:"timeliness"`
}

// ComplianceFlags mark the export-readiness of the data set.
type ComplianceFlags struct {
	Anonymized      bool `json:"anonymized"`
	ConsentVerified bool `json:"consentVerified"`
	MinimumCohort   bool `json:"minimumCohort"`
}

// ResearchAggregate is one aggregated metric over the anonymized set.
type ResearchAggregate struct {
	Field string  `json:"field"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ResearchDataWorkflowResult is handed to the export collaborator.
type ResearchDataWorkflowResult struct {
	ID          string              `json:"id"`
	DataType    string              `json:"dataType"`
	RecordCount int                 `json:"recordCount"`
	Quality     DataQualityScores   `json:"quality"`
	Compliance  ComplianceFlags     `json:"compliance"`
	Records     []ResearchRecord    `json:"records"` // anonymized
	Aggregates  []ResearchAggregate `json:"aggregates"`
	ProcessedAt time.Time           `json:"processedAt"`
}
