// internal/engine/visual/config.go
package visual

type Config struct {
	// BCS delta beyond which the body-condition trend leaves "stable".
	BCSTrendThreshold float64
	// Weight deltas (lb) bounding the growth trend classification.
	GrowthUpperDelta float64
	GrowthLowerDelta float64
	// Mean health-score delta beyond which the health trend leaves "stable".
	HealthTrendThreshold float64
	// Confidence steps for the 30/60/90 day projections. Must decay.
	Confidence30 float64
	Confidence60 float64
	Confidence90 float64
}

func LoadConfig() *Config {
	return &Config{
		BCSTrendThreshold:    0.3,
		GrowthUpperDelta:     5,
		GrowthLowerDelta:     -2,
		HealthTrendThreshold: 0.5,
		Confidence30:         85,
		Confidence60:         75,
		Confidence90:         65,
	}
}
