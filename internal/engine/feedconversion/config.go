// internal/engine/feedconversion/config.go
package feedconversion

type Config struct {
	// DefaultBenchmarkFCR is used when the primary feed product cannot be
	// resolved from the catalog.
	DefaultBenchmarkFCR float64
	// IndustryAverageFCR anchors the benchmark comparison block.
	IndustryAverageFCR float64
	// MaxEfficiencyRatio caps the reference/actual FCR ratio so noisy data
	// cannot produce runaway performance scores.
	MaxEfficiencyRatio float64
	// CostBonus is added to the performance score when the actual unit cost
	// beats the catalog price.
	CostBonus float64
}

func LoadConfig() *Config {
	return &Config{
		DefaultBenchmarkFCR: 6.5,
		IndustryAverageFCR:  6.5,
		MaxEfficiencyRatio:  1.5,
		CostBonus:           5,
	}
}
