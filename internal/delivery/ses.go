// internal/delivery/ses.go
package delivery

import (
	"context"
	"fmt"
	"strings"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESDeliverer delivers interventions and notifications over email.
type SESDeliverer struct {
	client    *ses.Client
	fromEmail string
}

func NewSESDeliverer(ctx context.Context, region, fromEmail string) (*SESDeliverer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESDeliverer{client: ses.NewFromConfig(cfg), fromEmail: fromEmail}, nil
}

func (d *SESDeliverer) Deliver(ctx context.Context, intervention models.EducationalIntervention) error {
	body := formatInterventionBody(intervention)
	return d.send(ctx, intervention.StudentID, intervention.Title, body)
}

func (d *SESDeliverer) Notify(ctx context.Context, _ models.OutputDestination, subject, body string) error {
	return d.send(ctx, d.fromEmail, subject, body)
}

func (d *SESDeliverer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: &d.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	}

	if _, err := d.client.SendEmail(ctx, input); err != nil {
		return errors.NewDeliveryFailedError("email", err)
	}
	return nil
}

func formatInterventionBody(iv models.EducationalIntervention) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\nAction items:\n", iv.Title, iv.Description)
	for _, item := range iv.ActionItems {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	if len(iv.Resources) > 0 {
		b.WriteString("\nResources:\n")
		for _, r := range iv.Resources {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	fmt.Fprintf(&b, "\nTimeline: %s\n", iv.Timeline)
	return b.String()
}
