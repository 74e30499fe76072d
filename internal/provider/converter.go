package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// URLConverter downloads an image URL and returns its bytes as base64.
type URLConverter interface {
	ConvertURLToBase64(ctx context.Context, imageURL string) (string, error)
}

// HTTPURLConverter is the resty-backed URLConverter.
type HTTPURLConverter struct {
	client *resty.Client
}

// NewURLConverter creates the download client.
func NewURLConverter() *HTTPURLConverter {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	return &HTTPURLConverter{client: client}
}

// ConvertURLToBase64 downloads the image and base64-encodes its bytes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageURL: publicly accessible image URL.
// Returns:
//   - string: base64-encoded image bytes.
//   - error: non-nil if the download fails or returns an empty body.
func (c *HTTPURLConverter) ConvertURLToBase64(ctx context.Context, imageURL string) (string, error) {
	httpResp, err := c.client.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image from %s: %w", imageURL, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("image download from %s returned HTTP %d", imageURL, httpResp.StatusCode())
	}

	body := httpResp.Body()
	if len(body) == 0 {
		return "", fmt.Errorf("empty response body from %s", imageURL)
	}
	return base64.StdEncoding.EncodeToString(body), nil
}
