package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityMapRoundTrip(t *testing.T) {
	m := map[string]float64{"2": 0.95, "3": 0.123456}

	blob, err := EncodeSimilarityMap(m)
	require.NoError(t, err)
	assert.Contains(t, blob, `"v":1`)

	decoded, err := DecodeSimilarityMap(blob)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestDecodeSimilarityMapLegacyFormat(t *testing.T) {
	decoded, err := DecodeSimilarityMap(`{"2": 0.95, "7": 0.5}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2": 0.95, "7": 0.5}, decoded)
}

func TestDecodeSimilarityMapEmpty(t *testing.T) {
	for _, blob := range []string{"", "  ", "{}"} {
		decoded, err := DecodeSimilarityMap(blob)
		require.NoError(t, err, "blob %q", blob)
		assert.Empty(t, decoded)
	}
}

func TestDecodeSimilarityMapMalformed(t *testing.T) {
	tests := []string{
		`not json at all`,
		`{"2": "high"}`,
		`[1, 2, 3]`,
	}
	for _, blob := range tests {
		_, err := DecodeSimilarityMap(blob)
		require.Error(t, err, "blob %q", blob)
		assert.ErrorIs(t, err, ErrMalformedBlob)
	}
}

func TestFieldEmbeddingsRoundTrip(t *testing.T) {
	fields := map[string][]float32{
		"hobbies": {0.1, 0.2},
		"pets":    {0.3, 0.4},
	}

	blob, err := EncodeFieldEmbeddings(fields)
	require.NoError(t, err)

	decoded, err := DecodeFieldEmbeddings(blob)
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)
}

func TestDecodeFieldEmbeddingsLegacyFormat(t *testing.T) {
	legacy, err := json.Marshal(map[string][]float32{"hobbies": {1, 2}})
	require.NoError(t, err)

	decoded, err := DecodeFieldEmbeddings(string(legacy))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, decoded["hobbies"])
}

func TestDecodeFieldEmbeddingsMalformed(t *testing.T) {
	_, err := DecodeFieldEmbeddings(`{"hobbies": "nope"}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedBlob)
}
