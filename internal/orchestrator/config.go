// internal/orchestrator/config.go
package orchestrator

import "time"

type Config struct {
	// ProfileCacheTTL bounds how long a computed animal profile is served
	// without recomputation.
	ProfileCacheTTL time.Duration
	// ProfileCacheCleanup is the expired-entry sweep interval.
	ProfileCacheCleanup time.Duration
	// FCRAlertThreshold marks a dashboard alert when the latest FCR is worse.
	FCRAlertThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		ProfileCacheTTL:     5 * time.Minute,
		ProfileCacheCleanup: 10 * time.Minute,
		FCRAlertThreshold:   7.0,
	}
}
