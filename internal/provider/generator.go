// Package provider wraps the external image generation, download, and
// classification capabilities. Every client is a thin resty wrapper; the
// core pipeline treats them as black boxes that either return data or fail.
package provider

import "context"

// ImageGenerator produces base64 image data for a description.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, description string) (string, error)
}

// Config holds credentials and endpoints for every generation backend.
type Config struct {
	OpenAI      OpenAIConfig
	AzureOpenAI AzureOpenAIConfig
	Stability   StabilityConfig
	Google      GoogleConfig
	Gemini      GoogleConfig
	HuggingFace HuggingFaceConfig
}

// Factory resolves an ImageGenerator by lower-cased platform name.
// Unrecognized names fall back to the public OpenAI backend.
type Factory struct {
	generators map[string]ImageGenerator
	fallback   ImageGenerator
}

// NewFactory builds the per-platform generator clients.
// Parameters:
//   - cfg: provider configuration.
// Returns:
//   - *Factory: factory resolving generators by platform name.
func NewFactory(cfg *Config) *Factory {
	public := NewOpenAIGenerator(&cfg.OpenAI)
	return &Factory{
		generators: map[string]ImageGenerator{
			"public":      public,
			"azure":       NewAzureOpenAIGenerator(&cfg.AzureOpenAI),
			"stability":   NewStabilityGenerator(&cfg.Stability),
			"google":      NewGoogleGenerator(&cfg.Google),
			"gemini":      NewGoogleGenerator(&cfg.Gemini),
			"huggingface": NewHuggingFaceGenerator(&cfg.HuggingFace),
		},
		fallback: public,
	}
}

// Generator returns the client for a platform name, falling back to the
// public backend for unknown names.
func (f *Factory) Generator(platform string) ImageGenerator {
	if g, ok := f.generators[platform]; ok {
		return g
	}
	return f.fallback
}
