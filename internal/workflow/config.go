// internal/workflow/config.go
package workflow

import "time"

type Config struct {
	// HistoryLimit caps the executions retained per workflow.
	HistoryLimit int
	// ActionTimeout bounds each I/O-bound action step.
	ActionTimeout time.Duration
	// FollowUpDays sets when an intervention's follow-up check runs.
	FollowUpDays int
	// ResearchFreshnessDays is the timeliness window for research records.
	ResearchFreshnessDays int
	// AnonymizeSalt feeds the research id hashing.
	AnonymizeSalt string
	// MinimumCohort is the distinct-animal floor for release compliance.
	MinimumCohort int
}

func LoadConfig() *Config {
	return &Config{
		HistoryLimit:          500,
		ActionTimeout:         30 * time.Second,
		FollowUpDays:          7,
		ResearchFreshnessDays: 90,
		AnonymizeSalt:         "rotate-me",
		MinimumCohort:         3,
	}
}
