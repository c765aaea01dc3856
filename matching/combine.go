package matching

import "github.com/pkg/errors"

// CombineStrategy selects how the whole-profile vector and the per-field
// vectors merge into one combined embedding per user. Both strategies yield
// vectors of the profile dimension and are interchangeable at configuration
// time; changing strategy changes scores, not correctness.
type CombineStrategy string

const (
	// CombineSum adds the element-wise mean of the field vectors to the
	// profile vector.
	CombineSum CombineStrategy = "sum"
	// CombineWeightedAverage blends the L2-normalized profile vector (60%)
	// with the L2-normalized field mean (40%).
	CombineWeightedAverage CombineStrategy = "weighted_average"
)

const (
	weightedProfileShare = 0.6
	weightedFieldShare   = 0.4
)

// Combiner builds combined embeddings from a profile vector plus a field
// embedding set restricted to EmbeddingFields.
type Combiner struct {
	Strategy CombineStrategy
	Dim      int
}

// NewCombiner validates the strategy and returns a combiner for vectors of
// the given dimension.
func NewCombiner(strategy CombineStrategy, dim int) (*Combiner, error) {
	switch strategy {
	case CombineSum, CombineWeightedAverage:
	default:
		return nil, errors.Errorf("unknown combine strategy %q", strategy)
	}
	if dim <= 0 {
		return nil, errors.Errorf("invalid embedding dimension %d", dim)
	}
	return &Combiner{Strategy: strategy, Dim: dim}, nil
}

// Combine merges the profile vector with the field embedding set. Field
// vectors outside EmbeddingFields are ignored; an empty set contributes a
// zero vector.
func (c *Combiner) Combine(profile []float32, fields map[string][]float32) []float64 {
	fieldAvg := averageFieldEmbedding(fields, EmbeddingFields, c.Dim)

	switch c.Strategy {
	case CombineWeightedAverage:
		normProfile := l2Normalize(toFloat64(profile))
		normFields := l2Normalize(fieldAvg)
		out := make([]float64, c.Dim)
		for i := range out {
			var p, f float64
			if i < len(normProfile) {
				p = normProfile[i]
			}
			if i < len(normFields) {
				f = normFields[i]
			}
			out[i] = weightedProfileShare*p + weightedFieldShare*f
		}
		return out
	default:
		out := make([]float64, c.Dim)
		for i := range out {
			if i < len(profile) {
				out[i] = float64(profile[i])
			}
			out[i] += fieldAvg[i]
		}
		return out
	}
}
