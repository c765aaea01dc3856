package matching

import "math"

// Scoring weights. The embedding similarity dominates the final blend; the
// rule-based score nudges it with hand-tuned domain knowledge.
const (
	EmbeddingWeight = 0.7
	RuleWeight      = 0.3

	mbtiSimilarityWeight = 0.7
)

// mbtiWeights weighs the four MBTI axes: E/I, N/S, F/T, J/P. The middle axes
// matter more for day-to-day compatibility than the outer ones.
var mbtiWeights = [4]float64{0.5, 1.0, 1.0, 0.5}

var mbtiTotalWeight = func() float64 {
	var sum float64
	for _, w := range mbtiWeights {
		sum += w
	}
	return sum
}()

// mbtiCompatibility maps each MBTI type to its complementary types.
var mbtiCompatibility = map[string][]string{
	"INTJ": {"ENFP", "ENTP"},
	"INTP": {"ENTJ", "ENFJ"},
	"INFJ": {"ENFP", "ENTP"},
	"INFP": {"ENFJ", "ESFJ"},
	"ISTJ": {"ESFP", "ESTP"},
	"ISTP": {"ESFJ", "ENFJ"},
	"ISFJ": {"ESTP", "ESFP"},
	"ISFP": {"ENFJ", "ESFJ"},
	"ENTJ": {"INFP", "INTP"},
	"ENTP": {"INFJ", "INTJ"},
	"ENFJ": {"INFP", "ISFP"},
	"ENFP": {"INFJ", "INTJ"},
	"ESTJ": {"ISFP", "ISTP"},
	"ESTP": {"ISFJ", "ISTJ"},
	"ESFJ": {"ISFP", "INFP"},
	"ESFP": {"ISFJ", "ISTJ"},
}

// ageGroupOrder assigns each age bucket its ordinal position.
var ageGroupOrder = map[string]int{
	"AGE_10S": 1,
	"AGE_20S": 2,
	"AGE_30S": 3,
	"AGE_40S": 4,
	"AGE_50S": 5,
	"AGE_60S": 6,
}

// UnknownAgePolicy selects how two profiles that both lack a known age bucket
// are scored. Historical revisions of the scoring disagreed here, so the
// behavior is configuration rather than a constant.
type UnknownAgePolicy string

const (
	// UnknownAgeEqual treats two unknown buckets as a full match, consistent
	// with the no-penalty policy for missing MBTI data.
	UnknownAgeEqual UnknownAgePolicy = "equal"
	// UnknownAgeZero treats two unknown buckets as no match.
	UnknownAgeZero UnknownAgePolicy = "zero"
)

// RuleScorer computes the rule-based compatibility score between two
// normalized attribute sets. Pure and deterministic.
type RuleScorer struct {
	UnknownAge UnknownAgePolicy
}

// NewRuleScorer returns a scorer with the default missing-data policy.
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{UnknownAge: UnknownAgeEqual}
}

// MBTIScore blends per-axis similarity with complementary-type compatibility.
// Missing or malformed types score a neutral value instead of a penalty:
// 0.5 when both are invalid, 0.6 when exactly one is.
func (s *RuleScorer) MBTIScore(a, b string) float64 {
	invalidA := len(a) != 4 || mbtiCompatibility[a] == nil
	invalidB := len(b) != 4 || mbtiCompatibility[b] == nil
	if invalidA && invalidB {
		return 0.5
	}
	if invalidA || invalidB {
		return 0.6
	}

	var matched float64
	for i := 0; i < 4; i++ {
		if a[i] == b[i] {
			matched += mbtiWeights[i]
		}
	}
	similarity := matched / mbtiTotalWeight

	// An identical type counts as compatible, so a perfect axis match scores
	// a full 1.0 rather than being capped by the complementary-type table.
	// The table is checked in both directions; its entries are not a perfect
	// mirror, and the score must not depend on argument order.
	compatibility := 0.0
	if a == b || listsType(mbtiCompatibility[a], b) || listsType(mbtiCompatibility[b], a) {
		compatibility = 1.0
	}

	return Round6(mbtiSimilarityWeight*similarity + (1-mbtiSimilarityWeight)*compatibility)
}

// AgeGroupScore scores ordinal distance between two age buckets: equal 1.0,
// adjacent 0.5, otherwise 0.0.
func (s *RuleScorer) AgeGroupScore(a, b string) float64 {
	av, okA := ageGroupOrder[a]
	bv, okB := ageGroupOrder[b]
	if !okA && !okB {
		if s.UnknownAge == UnknownAgeEqual {
			return 1.0
		}
		return 0.0
	}
	if !okA || !okB {
		return 0.0
	}

	switch diff := abs(av - bv); diff {
	case 0:
		return 1.0
	case 1:
		return 0.5
	default:
		return 0.0
	}
}

// MatchTags computes Jaccard similarity over two tag sets. Either side empty
// scores 0.0.
func MatchTags(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	overlap := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			overlap++
		}
	}
	union := len(setA) + len(setB) - overlap
	return Round6(float64(overlap) / float64(union))
}

// Score computes the composite rule-based score:
// 30% base-field agreement, 20% MBTI, 20% age, 30% preferred/personality
// overlap. The preference fields are directional, so both directions are
// averaged; the composite is symmetric.
func (s *RuleScorer) Score(a, b Attributes) float64 {
	baseMatches := 0
	if a.Religion == b.Religion {
		baseMatches++
	}
	if a.Smoking == b.Smoking {
		baseMatches++
	}
	if a.Drinking == b.Drinking {
		baseMatches++
	}
	baseScore := float64(baseMatches) / 3.0

	mbtiScore := s.MBTIScore(a.MBTI, b.MBTI)
	ageScore := s.AgeGroupScore(a.AgeGroup, b.AgeGroup)

	prefScore := MatchTags(a.PreferredPeople, b.Personality)
	revPrefScore := MatchTags(b.PreferredPeople, a.Personality)

	final := baseScore*0.3 + mbtiScore*0.2 + ageScore*0.2 + (prefScore+revPrefScore)/2*0.3
	return Round6(final)
}

// Round6 rounds to six decimal places, the precision every stored score uses.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func listsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
