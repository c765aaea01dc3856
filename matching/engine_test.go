package matching

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, strategy CombineStrategy, dim int) *Engine {
	t.Helper()
	combiner, err := NewCombiner(strategy, dim)
	require.NoError(t, err)
	return NewEngine(NewRuleScorer(), combiner)
}

func testCandidate(id, domain string, dim int, seed int64) Candidate {
	rng := rand.New(rand.NewSource(seed))
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = rng.Float32()*2 - 1
	}
	fields := map[string][]float32{}
	for _, f := range []string{"hobbies", "pets"} {
		fv := make([]float32, dim)
		for i := range fv {
			fv[i] = rng.Float32()*2 - 1
		}
		fields[f] = fv
	}
	return Candidate{
		ID:          id,
		EmailDomain: domain,
		Attrs: Attributes{
			MBTI:            "ESTP",
			AgeGroup:        "AGE_20S",
			Religion:        "NON_RELIGIOUS",
			Smoking:         "NO_SMOKING",
			Drinking:        "SOMETIMES",
			Personality:     []string{"KIND"},
			PreferredPeople: []string{"KIND", "CALM"},
		},
		Embedding:       vec,
		FieldEmbeddings: fields,
	}
}

func TestComputeScoresExcludesSelfAndForeignDomains(t *testing.T) {
	engine := testEngine(t, CombineSum, 8)

	self := testCandidate("1", "hertz.com", 8, 1)
	pool := []Candidate{
		self,
		testCandidate("2", "hertz.com", 8, 2),
		testCandidate("3", "other.org", 8, 3),
		testCandidate("4", "hertz.com", 8, 4),
	}

	scores := engine.ComputeScores(self, pool)

	assert.NotContains(t, scores, "1", "no self-match")
	assert.NotContains(t, scores, "3", "domain isolation")
	assert.Len(t, scores, 2)
	for id, score := range scores {
		assert.GreaterOrEqualf(t, score, 0.0, "score for %s below range", id)
		assert.LessOrEqualf(t, score, 1.0, "score for %s above range", id)
	}
}

func TestComputeScoresEmptyPool(t *testing.T) {
	engine := testEngine(t, CombineSum, 8)
	self := testCandidate("1", "hertz.com", 8, 1)

	assert.Empty(t, engine.ComputeScores(self, nil))
	assert.Empty(t, engine.ComputeScoresBatched(self, []Candidate{self}))
}

func TestBatchedMatchesNaive(t *testing.T) {
	for _, strategy := range []CombineStrategy{CombineSum, CombineWeightedAverage} {
		t.Run(string(strategy), func(t *testing.T) {
			engine := testEngine(t, strategy, 16)

			self := testCandidate("0", "hertz.com", 16, 100)
			var pool []Candidate
			for i := 1; i <= 20; i++ {
				domain := "hertz.com"
				if i%4 == 0 {
					domain = "elsewhere.io"
				}
				pool = append(pool, testCandidate(fmt.Sprintf("%d", i), domain, 16, int64(i)))
			}

			naive := engine.ComputeScores(self, pool)
			batched := engine.ComputeScoresBatched(self, pool)

			require.Equal(t, len(naive), len(batched))
			for id, want := range naive {
				assert.InDeltaf(t, want, batched[id], 1e-6, "score for %s diverged", id)
			}
		})
	}
}

func TestEmbeddingTextUsesDisplayNames(t *testing.T) {
	p := &Profile{
		UserID:      "1",
		EmailDomain: "hertz.com",
		Gender:      "MALE",
		AgeGroup:    "AGE_20S",
		MBTI:        "ESTP",
		Religion:    "NON_RELIGIOUS",
		Smoking:     "NO_SMOKING",
		Drinking:    "SOMETIMES",
		Hobbies:     []string{"GAMING", "MUSIC"},
	}

	text := EmbeddingText(p)
	assert.Contains(t, text, "gender: 남자")
	assert.Contains(t, text, "religion: 무교")
	assert.Contains(t, text, "hobbies: 게임, 음악")
	assert.NotContains(t, text, "NO_SMOKING")
	// ageGroup and MBTI are not part of the embedded text fields
	assert.NotContains(t, text, "ageGroup")

	assert.Equal(t, "게임, 음악", FieldText(p, "hobbies"))
	assert.Equal(t, "", FieldText(p, "pets"))
}

func TestDisplayValuePassThrough(t *testing.T) {
	assert.Equal(t, "UNKNOWN", DisplayValue("gender", "UNKNOWN"))
	assert.Equal(t, "듬직한", DisplayValue("personality", "RELIABLE"))
	assert.Equal(t, "NEW_TAG", DisplayValue("personality", "NEW_TAG"))
	assert.Equal(t, "hertz.com", DisplayValue("emailDomain", "hertz.com"))
	assert.Equal(t, "ESTP", DisplayValue("MBTI", "ESTP"))
}
