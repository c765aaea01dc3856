package matching

import "math"

// Vector math helpers for combined embeddings. Stored vectors are []float32
// (the wire format of the embedding provider and the vector store); all
// arithmetic accumulates in float64 to keep the blended scores stable.

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// averageFieldEmbedding averages the available field vectors over the given
// field names. Missing fields are skipped; with no vectors at all it returns
// a zero vector of the requested dimension.
func averageFieldEmbedding(fields map[string][]float32, names []string, dim int) []float64 {
	avg := make([]float64, dim)
	count := 0
	for _, name := range names {
		vec, ok := fields[name]
		if !ok || len(vec) != dim {
			continue
		}
		for i, v := range vec {
			avg[i] += float64(v)
		}
		count++
	}
	if count == 0 {
		return avg
	}
	for i := range avg {
		avg[i] /= float64(count)
	}
	return avg
}

// l2Normalize scales v to unit length. Zero vectors are returned unchanged.
func l2Normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
