package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// StabilityConfig configures the Stability AI backend.
type StabilityConfig struct {
	APIKey string
	Model  string // generation engine path segment, e.g. "core"
}

// StabilityGenerator calls the Stability AI stable-image API. The API
// returns raw image bytes, which are re-encoded to base64.
type StabilityGenerator struct {
	client   *resty.Client
	endpoint string
}

// NewStabilityGenerator creates the Stability AI client.
func NewStabilityGenerator(cfg *StabilityConfig) *StabilityGenerator {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Accept", "image/*")
	client.SetTimeout(120 * time.Second)

	model := cfg.Model
	if model == "" {
		model = "core"
	}

	return &StabilityGenerator{
		client:   client,
		endpoint: "https://api.stability.ai/v2beta/stable-image/generate/" + model,
	}
}

func (g *StabilityGenerator) GenerateImage(ctx context.Context, description string) (string, error) {
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"prompt":        description,
			"output_format": "png",
		}).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Stability AI API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("Stability AI API returned error: HTTP %d: %s",
			httpResp.StatusCode(), string(httpResp.Body()))
	}

	body := httpResp.Body()
	if len(body) == 0 {
		return "", fmt.Errorf("no image bytes in Stability AI response")
	}
	return base64.StdEncoding.EncodeToString(body), nil
}
