// internal/orchestrator/dashboard.go
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"
)

// GeneratePersonalizedDashboard assembles the per-user read-model. A user
// with no animals gets the documented empty state: zero profiles, zero
// alerts, and a welcome message.
func (s *Service) GeneratePersonalizedDashboard(ctx context.Context, userID string) (*models.PersonalizedDashboard, error) {
	if !s.initialized {
		return nil, errors.NewNotInitializedError("orchestration service")
	}

	animals, err := s.directory.ListAnimals(ctx, userID)
	if err != nil {
		return nil, s.reporter.Report("list-animals", err)
	}

	dashboard := &models.PersonalizedDashboard{
		UserID:      userID,
		GeneratedAt: time.Now().UTC(),
	}

	if len(animals) == 0 {
		dashboard.Welcome = "Welcome. Add your first animal to start tracking feed performance."
		return dashboard, nil
	}

	var fcrSum float64
	var fcrCount int
	for _, animal := range animals {
		profile, err := s.Profile(ctx, animal.ID)
		if err != nil {
			// One broken animal must not take down the whole dashboard.
			dashboard.Alerts = append(dashboard.Alerts, models.DashboardAlert{
				AnimalID: animal.ID,
				Severity: "warning",
				Message:  "Profile unavailable for this animal",
			})
			continue
		}

		dashboard.Profiles = append(dashboard.Profiles, *profile)
		dashboard.Performance.TotalInvestment += profile.TotalFeedCost

		if profile.LatestFCR != nil {
			fcrSum += profile.LatestFCR.FCR
			fcrCount++
			if profile.LatestFCR.FCR > s.config.FCRAlertThreshold {
				dashboard.Alerts = append(dashboard.Alerts, models.DashboardAlert{
					AnimalID: animal.ID,
					Severity: "warning",
					Message:  fmt.Sprintf("Feed conversion ratio %.1f is above the %.1f alert threshold", profile.LatestFCR.FCR, s.config.FCRAlertThreshold),
				})
			}
		}
		if profile.LatestVisual != nil && profile.LatestVisual.BodyConditionTrend == models.TrendDeclining {
			dashboard.Alerts = append(dashboard.Alerts, models.DashboardAlert{
				AnimalID: animal.ID,
				Severity: "warning",
				Message:  "Body condition is trending down in recent photos",
			})
		}
	}

	dashboard.Performance.AnimalCount = len(dashboard.Profiles)
	if fcrCount > 0 {
		dashboard.Performance.MeanFCR = fcrSum / float64(fcrCount)
	}
	// EstimatedROI stays zero until sale data exists in the system.

	return dashboard, nil
}
