// internal/delivery/sns.go
package delivery

import (
	"context"
	"fmt"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSDeliverer delivers interventions and notifications over SMS.
type SNSDeliverer struct {
	client *sns.Client
}

func NewSNSDeliverer(ctx context.Context, region string) (*SNSDeliverer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSDeliverer{client: sns.NewFromConfig(cfg)}, nil
}

func (d *SNSDeliverer) Deliver(ctx context.Context, intervention models.EducationalIntervention) error {
	msg := fmt.Sprintf("%s: %s", intervention.Title, intervention.Description)
	return d.publish(ctx, intervention.StudentID, msg)
}

func (d *SNSDeliverer) Notify(ctx context.Context, _ models.OutputDestination, subject, body string) error {
	return d.publish(ctx, subject, body)
}

func (d *SNSDeliverer) publish(ctx context.Context, phoneNumber, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: &phoneNumber,
		Message:     &message,
	}
	if _, err := d.client.Publish(ctx, input); err != nil {
		return errors.NewDeliveryFailedError("sms", err)
	}
	return nil
}
