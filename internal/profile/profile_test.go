package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *Profile {
	return &Profile{
		Mode:                "dev",
		Driver:              "memory",
		EmbeddingDimensions: 768,
		CombineStrategy:     "sum",
		UnknownAgePolicy:    "equal",
		MatchTopK:           100,
		SyncConcurrency:     4,
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"valid memory profile", func(*Profile) {}, false},
		{"postgres without dsn", func(p *Profile) { p.Driver = "postgres" }, true},
		{"postgres with dsn", func(p *Profile) { p.Driver = "postgres"; p.DSN = "postgres://localhost/tuning" }, false},
		{"unknown driver", func(p *Profile) { p.Driver = "oracle" }, true},
		{"zero dimensions", func(p *Profile) { p.EmbeddingDimensions = 0 }, true},
		{"bad combine strategy", func(p *Profile) { p.CombineStrategy = "concat" }, true},
		{"bad age policy", func(p *Profile) { p.UnknownAgePolicy = "half" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProfileValidateAppliesDefaults(t *testing.T) {
	p := validProfile()
	p.Mode = "staging"
	p.MatchTopK = 0
	p.SyncConcurrency = -1

	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
	assert.Equal(t, 100, p.MatchTopK)
	assert.Equal(t, 1, p.SyncConcurrency)
}

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"TUNING_EMBEDDING_PROVIDER", "TUNING_EMBEDDING_MODEL", "TUNING_EMBEDDING_DIMENSIONS",
		"TUNING_COMBINE_STRATEGY", "TUNING_UNKNOWN_AGE_POLICY", "TUNING_MATCH_TOP_K",
	} {
		t.Setenv(key, "")
	}

	p := &Profile{}
	FromEnv(p)

	assert.Equal(t, "siliconflow", p.EmbeddingProvider)
	assert.Equal(t, "BAAI/bge-m3", p.EmbeddingModel)
	assert.Equal(t, 768, p.EmbeddingDimensions)
	assert.Equal(t, "sum", p.CombineStrategy)
	assert.Equal(t, "equal", p.UnknownAgePolicy)
	assert.Equal(t, 100, p.MatchTopK)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TUNING_EMBEDDING_DIMENSIONS", "1024")
	t.Setenv("TUNING_COMBINE_STRATEGY", "weighted_average")
	t.Setenv("TUNING_UNKNOWN_AGE_POLICY", "zero")

	p := &Profile{}
	FromEnv(p)

	assert.Equal(t, 1024, p.EmbeddingDimensions)
	assert.Equal(t, "weighted_average", p.CombineStrategy)
	assert.Equal(t, "zero", p.UnknownAgePolicy)
}
