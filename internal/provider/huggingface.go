package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HuggingFaceConfig configures a Hugging Face inference endpoint.
type HuggingFaceConfig struct {
	APIKey   string
	Endpoint string // full model inference URL
}

// HuggingFaceGenerator calls a Hugging Face text-to-image inference
// endpoint, which returns raw image bytes.
type HuggingFaceGenerator struct {
	client   *resty.Client
	endpoint string
}

// NewHuggingFaceGenerator creates the Hugging Face client.
func NewHuggingFaceGenerator(cfg *HuggingFaceConfig) *HuggingFaceGenerator {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	return &HuggingFaceGenerator{client: client, endpoint: cfg.Endpoint}
}

func (g *HuggingFaceGenerator) GenerateImage(ctx context.Context, description string) (string, error) {
	if g.endpoint == "" {
		return "", fmt.Errorf("hugging face endpoint not configured")
	}

	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"inputs": description}).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Hugging Face API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("Hugging Face API returned error: HTTP %d: %s",
			httpResp.StatusCode(), string(httpResp.Body()))
	}

	body := httpResp.Body()
	if len(body) == 0 {
		return "", fmt.Errorf("no image bytes in Hugging Face response")
	}
	return base64.StdEncoding.EncodeToString(body), nil
}
