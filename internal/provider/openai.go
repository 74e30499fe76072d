package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// OpenAIConfig configures the public OpenAI image backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
}

// OpenAIGenerator calls the OpenAI image generation API.
type OpenAIGenerator struct {
	client   *resty.Client
	endpoint string
	model    string
	size     string
}

// NewOpenAIGenerator creates the public OpenAI client.
func NewOpenAIGenerator(cfg *OpenAIConfig) *OpenAIGenerator {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}
	size := cfg.Size
	if size == "" {
		size = "1024x1024"
	}

	return &OpenAIGenerator{
		client:   client,
		endpoint: baseURL + "/images/generations",
		model:    model,
		size:     size,
	}
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateImage generates an image and returns it as base64.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - description: prompt text.
// Returns:
//   - string: base64-encoded image data.
//   - error: non-nil if the API request fails or returns no image.
func (g *OpenAIGenerator) GenerateImage(ctx context.Context, description string) (string, error) {
	req := openAIImageRequest{
		Model:          g.model,
		Prompt:         description,
		N:              1,
		Size:           g.size,
		ResponseFormat: "b64_json",
	}

	var resp openAIImageResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI image API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("OpenAI image API returned error: %s", errorMsg)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", fmt.Errorf("no image data in OpenAI response")
	}
	return resp.Data[0].B64JSON, nil
}
