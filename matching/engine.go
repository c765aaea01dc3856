package matching

import "math"

// Candidate is one user as seen by the score engine: identity, domain
// partition, rule attributes, and the raw vectors needed to build the
// combined embedding.
type Candidate struct {
	ID              string
	EmailDomain     string
	Attrs           Attributes
	Embedding       []float32
	FieldEmbeddings map[string][]float32
}

// Engine blends cosine similarity of combined embeddings with the rule-based
// score into one final score per (user, otherUser) pair. Candidates outside
// the target's organization domain, and the target itself, never receive a
// score.
type Engine struct {
	Rule     *RuleScorer
	Combiner *Combiner
}

// NewEngine builds an engine from a rule scorer and a combiner.
func NewEngine(rule *RuleScorer, combiner *Combiner) *Engine {
	return &Engine{Rule: rule, Combiner: combiner}
}

// ComputeScores runs the per-pair loop: for each same-domain candidate,
// combine embeddings, take cosine similarity, blend with the rule score.
func (e *Engine) ComputeScores(self Candidate, pool []Candidate) map[string]float64 {
	scores := make(map[string]float64)
	selfCombined := e.Combiner.Combine(self.Embedding, self.FieldEmbeddings)

	for _, other := range pool {
		if other.ID == self.ID || other.EmailDomain != self.EmailDomain {
			continue
		}
		otherCombined := e.Combiner.Combine(other.Embedding, other.FieldEmbeddings)
		cosine := CosineSimilarity(selfCombined, otherCombined)
		rule := e.Rule.Score(self.Attrs, other.Attrs)
		scores[other.ID] = blend(cosine, rule)
	}
	return scores
}

// ComputeScoresBatched is the optimized variant: the pool is filtered by
// domain before any vector math and the cosine similarities are computed in
// one pass over the filtered combined-embedding matrix. Numerically
// equivalent to ComputeScores within rounding tolerance.
func (e *Engine) ComputeScoresBatched(self Candidate, pool []Candidate) map[string]float64 {
	filtered := pool[:0:0]
	for _, other := range pool {
		if other.ID == self.ID || other.EmailDomain != self.EmailDomain {
			continue
		}
		filtered = append(filtered, other)
	}
	scores := make(map[string]float64, len(filtered))
	if len(filtered) == 0 {
		return scores
	}

	selfCombined := e.Combiner.Combine(self.Embedding, self.FieldEmbeddings)
	matrix := make([][]float64, len(filtered))
	for i, other := range filtered {
		matrix[i] = e.Combiner.Combine(other.Embedding, other.FieldEmbeddings)
	}

	cosines := batchCosineSimilarity(selfCombined, matrix)
	for i, other := range filtered {
		rule := e.Rule.Score(self.Attrs, other.Attrs)
		scores[other.ID] = blend(cosines[i], rule)
	}
	return scores
}

// blend folds cosine and rule similarity into the final score. Cosine
// similarity of arbitrary vectors ranges [-1,1]; the final score is clamped
// so every stored value stays within [0,1].
func blend(cosine, rule float64) float64 {
	score := EmbeddingWeight*cosine + RuleWeight*rule
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return Round6(score)
}

// batchCosineSimilarity computes query·rowᵀ / (|query||row|) for every row,
// hoisting the query norm out of the loop.
func batchCosineSimilarity(query []float64, rows [][]float64) []float64 {
	var queryNorm float64
	for _, x := range query {
		queryNorm += x * x
	}
	out := make([]float64, len(rows))
	if queryNorm == 0 {
		return out
	}

	for i, row := range rows {
		if len(row) != len(query) {
			continue
		}
		var dot, rowNorm float64
		for j := range row {
			dot += query[j] * row[j]
			rowNorm += row[j] * row[j]
		}
		if rowNorm == 0 {
			continue
		}
		out[i] = dot / (math.Sqrt(queryNorm) * math.Sqrt(rowNorm))
	}
	return out
}
