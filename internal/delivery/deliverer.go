// internal/delivery/deliverer.go
package delivery

import (
	"context"

	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"
)

// Deliverer hands an intervention to the notification collaborator. The
// engines' responsibility ends at this call.
type Deliverer interface {
	Deliver(ctx context.Context, intervention models.EducationalIntervention) error
}

// Notifier sends plain notification payloads produced by notify actions.
type Notifier interface {
	Notify(ctx context.Context, destination models.OutputDestination, subject, body string) error
}

// NoOp discards everything. Used in tests and when no channel is enabled.
type NoOp struct {
	logger logger.Logger
}

func NewNoOp(log logger.Logger) *NoOp {
	return &NoOp{logger: log}
}

func (n *NoOp) Deliver(_ context.Context, intervention models.EducationalIntervention) error {
	n.logger.Debug("intervention delivery skipped, no channel enabled", map[string]interface{}{
		"interventionId": intervention.ID,
		"studentId":      intervention.StudentID,
	})
	return nil
}

func (n *NoOp) Notify(_ context.Context, destination models.OutputDestination, subject, _ string) error {
	n.logger.Debug("notification skipped, no channel enabled", map[string]interface{}{
		"destination": string(destination),
		"subject":     subject,
	})
	return nil
}
