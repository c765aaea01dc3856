package store

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Serialized blob formats for metadata-embedded structures. Blobs carry an
// explicit schema version so malformed-data recovery can check the version
// instead of guessing at string shape. Version 0 (a bare JSON object, the
// historical format) is still accepted on read and rewritten versioned.

const blobVersion = 1

// ErrMalformedBlob reports a stored blob that fails to parse. Callers treat
// the value as empty and log; the entry self-heals on the next recompute.
var ErrMalformedBlob = errors.New("malformed metadata blob")

type similarityBlob struct {
	V            int                `json:"v"`
	Similarities map[string]float64 `json:"similarities"`
}

// EncodeSimilarityMap serializes a score map into the versioned blob format.
func EncodeSimilarityMap(m map[string]float64) (string, error) {
	if m == nil {
		m = map[string]float64{}
	}
	raw, err := json.Marshal(similarityBlob{V: blobVersion, Similarities: m})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode similarity map")
	}
	return string(raw), nil
}

// DecodeSimilarityMap parses a similarity blob. An empty blob decodes to an
// empty map; an unparseable one returns ErrMalformedBlob.
func DecodeSimilarityMap(blob string) (map[string]float64, error) {
	if strings.TrimSpace(blob) == "" {
		return map[string]float64{}, nil
	}

	var versioned similarityBlob
	if err := json.Unmarshal([]byte(blob), &versioned); err == nil && versioned.V >= blobVersion {
		if versioned.Similarities == nil {
			return map[string]float64{}, nil
		}
		return versioned.Similarities, nil
	}

	// Legacy format: the map itself, unversioned.
	var legacy map[string]float64
	if err := json.Unmarshal([]byte(blob), &legacy); err != nil {
		return nil, errors.Wrapf(ErrMalformedBlob, "similarity blob: %v", err)
	}
	if legacy == nil {
		legacy = map[string]float64{}
	}
	return legacy, nil
}

type fieldEmbeddingBlob struct {
	V      int                  `json:"v"`
	Fields map[string][]float32 `json:"fields"`
}

// EncodeFieldEmbeddings serializes a field embedding set into the versioned
// blob format.
func EncodeFieldEmbeddings(fields map[string][]float32) (string, error) {
	if fields == nil {
		fields = map[string][]float32{}
	}
	raw, err := json.Marshal(fieldEmbeddingBlob{V: blobVersion, Fields: fields})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode field embeddings")
	}
	return string(raw), nil
}

// DecodeFieldEmbeddings parses a field embedding blob, accepting the legacy
// unversioned format.
func DecodeFieldEmbeddings(blob string) (map[string][]float32, error) {
	if strings.TrimSpace(blob) == "" {
		return map[string][]float32{}, nil
	}

	var versioned fieldEmbeddingBlob
	if err := json.Unmarshal([]byte(blob), &versioned); err == nil && versioned.V >= blobVersion {
		if versioned.Fields == nil {
			return map[string][]float32{}, nil
		}
		return versioned.Fields, nil
	}

	var legacy map[string][]float32
	if err := json.Unmarshal([]byte(blob), &legacy); err != nil {
		return nil, errors.Wrapf(ErrMalformedBlob, "field embedding blob: %v", err)
	}
	if legacy == nil {
		legacy = map[string][]float32{}
	}
	return legacy, nil
}
