package ai

import (
	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	Embedding EmbeddingConfig
}

// EmbeddingConfig represents vector embedding configuration. Any
// OpenAI-compatible provider works (openai, siliconflow, ollama, dashscope).
type EmbeddingConfig struct {
	Provider   string
	Model      string
	APIKey     string
	BaseURL    string
	Dimensions int
	// RatePerSecond caps embedding requests per second; 0 disables limiting.
	RatePerSecond float64
}

// NewConfigFromProfile builds the AI configuration from the instance profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:      p.EmbeddingProvider,
			Model:         p.EmbeddingModel,
			APIKey:        p.EmbeddingAPIKey,
			BaseURL:       p.EmbeddingBaseURL,
			Dimensions:    p.EmbeddingDimensions,
			RatePerSecond: p.EmbeddingRatePerSecond,
		},
	}
}

// Validate checks the embedding configuration. The dimensionality is fixed
// for the lifetime of a deployed index; changing it invalidates every stored
// vector.
func (c *Config) Validate() error {
	if c.Embedding.Model == "" {
		return errors.New("embedding model is required")
	}
	if c.Embedding.Dimensions <= 0 {
		return errors.New("embedding dimensions must be positive")
	}
	return nil
}
