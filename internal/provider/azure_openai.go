package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// AzureOpenAIConfig configures the Azure OpenAI image backend.
type AzureOpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// AzureOpenAIGenerator calls an Azure OpenAI DALL-E deployment.
type AzureOpenAIGenerator struct {
	client   *resty.Client
	endpoint string
	size     string
}

// NewAzureOpenAIGenerator creates the Azure OpenAI client.
func NewAzureOpenAIGenerator(cfg *AzureOpenAIConfig) *AzureOpenAIGenerator {
	client := resty.New()
	client.SetHeader("api-key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-02-01"
	}
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/images/generations?api-version=%s",
		strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Deployment, apiVersion)

	return &AzureOpenAIGenerator{
		client:   client,
		endpoint: endpoint,
		size:     "1024x1024",
	}
}

func (g *AzureOpenAIGenerator) GenerateImage(ctx context.Context, description string) (string, error) {
	req := map[string]interface{}{
		"prompt":          description,
		"n":               1,
		"size":            g.size,
		"response_format": "b64_json",
	}

	var resp openAIImageResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Azure OpenAI image API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("Azure OpenAI image API returned error: %s", errorMsg)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", fmt.Errorf("no image data in Azure OpenAI response")
	}
	return resp.Data[0].B64JSON, nil
}
