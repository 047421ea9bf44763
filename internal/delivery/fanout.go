// internal/delivery/fanout.go
package delivery

import (
	"context"

	"livestock-engine/internal/models"
)

// Channel is a delivery target that handles both interventions and plain
// notifications. SES and SNS both satisfy it.
type Channel interface {
	Deliverer
	Notifier
}

// Fanout sends every intervention and notification through each enabled
// channel. A channel failure does not stop the remaining channels; the
// first error is returned after all channels have been tried.
type Fanout struct {
	channels []Channel
}

func NewFanout(channels ...Channel) *Fanout {
	return &Fanout{channels: channels}
}

func (f *Fanout) Deliver(ctx context.Context, intervention models.EducationalIntervention) error {
	var firstErr error
	for _, ch := range f.channels {
		if err := ch.Deliver(ctx, intervention); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Fanout) Notify(ctx context.Context, destination models.OutputDestination, subject, body string) error {
	var firstErr error
	for _, ch := range f.channels {
		if err := ch.Notify(ctx, destination, subject, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
