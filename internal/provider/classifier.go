package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImageClassifier labels the image at a URL. The raw label string is
// normalized by the domain layer afterwards.
type ImageClassifier interface {
	Classify(ctx context.Context, imageURL string) (string, error)
}

// MockClassifier labels images by URL keywords. Useful for local runs
// without an Azure Vision resource.
type MockClassifier struct{}

func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

func (c *MockClassifier) Classify(_ context.Context, imageURL string) (string, error) {
	lower := strings.ToLower(imageURL)

	var labels []string
	if strings.Contains(lower, "food") || strings.Contains(lower, "pizza") || strings.Contains(lower, "burger") {
		labels = append(labels, "Food")
	}
	if strings.Contains(lower, "person") || strings.Contains(lower, "human") || strings.Contains(lower, "face") {
		labels = append(labels, "Person")
	}
	if len(labels) == 0 {
		return "None", nil
	}
	return strings.Join(labels, ", "), nil
}

// AzureVisionConfig configures the Azure AI Vision classifier.
type AzureVisionConfig struct {
	Endpoint string
	APIKey   string
}

// AzureVisionClassifier calls the Azure AI Vision image analysis API and
// maps its tags onto the domain label set.
type AzureVisionClassifier struct {
	client   *resty.Client
	endpoint string
}

// NewAzureVisionClassifier creates the Azure Vision client.
func NewAzureVisionClassifier(cfg *AzureVisionConfig) *AzureVisionClassifier {
	client := resty.New()
	client.SetHeader("Ocp-Apim-Subscription-Key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/") +
		"/computervision/imageanalysis:analyze?api-version=2024-02-01&features=tags"

	return &AzureVisionClassifier{client: client, endpoint: endpoint}
}

type azureVisionResponse struct {
	TagsResult struct {
		Values []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"values"`
	} `json:"tagsResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// tag names that map onto the domain's label set
var foodTags = map[string]struct{}{"food": {}, "dish": {}, "meal": {}, "cuisine": {}}
var personTags = map[string]struct{}{"person": {}, "human": {}, "man": {}, "woman": {}, "people": {}}

func (c *AzureVisionClassifier) Classify(ctx context.Context, imageURL string) (string, error) {
	var resp azureVisionResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": imageURL}).
		SetResult(&resp).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Azure Vision API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("Azure Vision API returned error: %s", errorMsg)
	}

	hasFood, hasPerson := false, false
	for _, tag := range resp.TagsResult.Values {
		name := strings.ToLower(tag.Name)
		if _, ok := foodTags[name]; ok {
			hasFood = true
		}
		if _, ok := personTags[name]; ok {
			hasPerson = true
		}
	}

	var labels []string
	if hasFood {
		labels = append(labels, "Food")
	}
	if hasPerson {
		labels = append(labels, "Person")
	}
	if len(labels) == 0 {
		return "None", nil
	}
	return strings.Join(labels, ", "), nil
}
