package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GoogleConfig configures a Google Imagen backend. The "google" and
// "gemini" platforms share this client with different default models.
type GoogleConfig struct {
	APIKey string
	Model  string
}

// GoogleGenerator calls the Generative Language Imagen predict API.
type GoogleGenerator struct {
	client   *resty.Client
	endpoint string
}

// NewGoogleGenerator creates an Imagen client for the configured model.
func NewGoogleGenerator(cfg *GoogleConfig) *GoogleGenerator {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	model := cfg.Model
	if model == "" {
		model = "imagen-3.0-generate-001"
	}
	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:predict?key=%s",
		model, cfg.APIKey)

	return &GoogleGenerator{client: client, endpoint: endpoint}
}

type googlePredictRequest struct {
	Instances  []googleInstance  `json:"instances"`
	Parameters *googleParameters `json:"parameters,omitempty"`
}

type googleInstance struct {
	Prompt string `json:"prompt"`
}

type googleParameters struct {
	SampleCount int `json:"sampleCount"`
}

type googlePredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *GoogleGenerator) GenerateImage(ctx context.Context, description string) (string, error) {
	req := googlePredictRequest{
		Instances:  []googleInstance{{Prompt: description}},
		Parameters: &googleParameters{SampleCount: 1},
	}

	var resp googlePredictResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Google Imagen API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("Google Imagen API returned error: %s", errorMsg)
	}

	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("no image data in Google Imagen response")
	}
	return resp.Predictions[0].BytesBase64Encoded, nil
}
