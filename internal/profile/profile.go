// Package profile holds the process configuration for a tuning instance.
package profile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	// Mode can be "prod", "dev", or "demo". Demo mode runs on the in-memory
	// store driver and needs no database.
	Mode string
	// Addr is the binding address of the server.
	Addr string
	// Port is the binding port of the server.
	Port int
	// Driver is the store driver: postgres, sqlite, or memory.
	Driver string
	// DSN is the database source name.
	DSN string
	// Version is the current service version.
	Version string

	// Embedding provider configuration (OpenAI-compatible protocol).
	EmbeddingProvider      string
	EmbeddingModel         string
	EmbeddingAPIKey        string
	EmbeddingBaseURL       string
	EmbeddingDimensions    int
	EmbeddingRatePerSecond float64

	// Matching configuration.
	//
	// CombineStrategy selects the embedding combination policy:
	// "sum" or "weighted_average".
	CombineStrategy string
	// UnknownAgePolicy scores two unknown age buckets: "equal" or "zero".
	UnknownAgePolicy string
	// MatchTopK bounds the candidate list returned per matching query.
	MatchTopK int
	// SyncConcurrency caps concurrent similarity sync passes.
	SyncConcurrency int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func FromEnv(p *Profile) {
	p.EmbeddingProvider = getEnvOrDefault("TUNING_EMBEDDING_PROVIDER", "siliconflow")
	p.EmbeddingModel = getEnvOrDefault("TUNING_EMBEDDING_MODEL", "BAAI/bge-m3")
	p.EmbeddingAPIKey = getEnvOrDefault("TUNING_EMBEDDING_API_KEY", "")
	p.EmbeddingBaseURL = getEnvOrDefault("TUNING_EMBEDDING_BASE_URL", "https://api.siliconflow.cn/v1")
	p.EmbeddingDimensions = getEnvOrDefaultInt("TUNING_EMBEDDING_DIMENSIONS", 768)
	p.EmbeddingRatePerSecond = getEnvOrDefaultFloat("TUNING_EMBEDDING_RATE_PER_SECOND", 0)

	p.CombineStrategy = getEnvOrDefault("TUNING_COMBINE_STRATEGY", "sum")
	p.UnknownAgePolicy = getEnvOrDefault("TUNING_UNKNOWN_AGE_POLICY", "equal")
	p.MatchTopK = getEnvOrDefaultInt("TUNING_MATCH_TOP_K", 100)
	p.SyncConcurrency = getEnvOrDefaultInt("TUNING_SYNC_CONCURRENCY", 4)
}

// Validate checks that the profile is runnable.
func (p *Profile) Validate() error {
	switch p.Mode {
	case "prod", "dev", "demo":
	default:
		p.Mode = "demo"
	}

	switch p.Driver {
	case "postgres", "sqlite":
		if p.DSN == "" {
			return errors.Errorf("dsn required for driver %q", p.Driver)
		}
	case "memory":
	default:
		return errors.Errorf("unknown driver %q", p.Driver)
	}

	if p.EmbeddingDimensions <= 0 {
		return errors.New("embedding dimensions must be positive")
	}

	switch p.CombineStrategy {
	case "sum", "weighted_average":
	default:
		return errors.Errorf("unknown combine strategy %q", p.CombineStrategy)
	}

	switch p.UnknownAgePolicy {
	case "equal", "zero":
	default:
		return errors.Errorf("unknown age policy %q", p.UnknownAgePolicy)
	}

	if p.MatchTopK <= 0 {
		p.MatchTopK = 100
	}
	if p.SyncConcurrency <= 0 {
		p.SyncConcurrency = 1
	}
	return nil
}

func (p *Profile) String() string {
	return fmt.Sprintf("mode=%s addr=%s port=%d driver=%s", p.Mode, p.Addr, p.Port, p.Driver)
}
