// internal/guidance/client.go
package guidance

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"livestock-engine/internal/common/config"
	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/models"

	"github.com/go-resty/resty/v2"
)

// Provider is the guidance-provider seam. Implementations must be treated as
// fallible and slow.
type Provider interface {
	GetGuidance(ctx context.Context, gc models.GuidanceContext) (*models.MentorResponse, error)
}

// Client calls the guidance provider over HTTP.
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.GuidanceConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(config.GetDuration(cfg.Timeout)).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{http: client}
}

func (c *Client) GetGuidance(ctx context.Context, gc models.GuidanceContext) (*models.MentorResponse, error) {
	var response models.MentorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(gc).
		SetResult(&response).
		Post("/v1/guidance")
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewGuidanceTimeoutError()
		}
		return nil, errors.NewGuidanceUnavailableError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.NewGuidanceUnavailableError(
			fmt.Errorf("guidance provider returned %d", resp.StatusCode()))
	}

	return &response, nil
}
