// Package matching implements the matching score engine: rule-based
// compatibility scoring, embedding combination, and the blended pairwise
// score used to rank candidates inside an organization domain.
package matching

import "strings"

// EmbeddingFields lists the tag-set fields that carry their own embedding
// vector. Only these fields participate in the combined embedding.
var EmbeddingFields = []string{
	"currentInterests",
	"favoriteFoods",
	"likedSports",
	"pets",
	"selfDevelopment",
	"hobbies",
}

// TextFields lists the fields rendered into the whole-profile text that is
// sent to the embedding provider.
var TextFields = []string{
	"emailDomain",
	"gender",
	"religion",
	"smoking",
	"drinking",
	"currentInterests",
	"favoriteFoods",
	"likedSports",
	"pets",
	"selfDevelopment",
	"hobbies",
}

// Profile is a user profile with canonical enum codes and tag lists.
// The identity is externally supplied; attributes are replaced wholesale on
// re-registration.
type Profile struct {
	UserID      string
	EmailDomain string
	Gender      string
	AgeGroup    string
	MBTI        string
	Religion    string
	Smoking     string
	Drinking    string

	Personality      []string
	PreferredPeople  []string
	CurrentInterests []string
	FavoriteFoods    []string
	LikedSports      []string
	Pets             []string
	SelfDevelopment  []string
	Hobbies          []string
}

// Attributes is the subset of a profile consumed by the rule-based scorer.
type Attributes struct {
	MBTI     string
	AgeGroup string
	Religion string
	Smoking  string
	Drinking string

	Personality     []string
	PreferredPeople []string
}

// Attributes extracts the rule-scoring attributes of the profile.
func (p *Profile) Attributes() Attributes {
	return Attributes{
		MBTI:            p.MBTI,
		AgeGroup:        p.AgeGroup,
		Religion:        p.Religion,
		Smoking:         p.Smoking,
		Drinking:        p.Drinking,
		Personality:     p.Personality,
		PreferredPeople: p.PreferredPeople,
	}
}

// Field returns the value of a named field as a display string slice. Scalar
// fields are returned as a single-element slice.
func (p *Profile) Field(name string) []string {
	switch name {
	case "emailDomain":
		return []string{p.EmailDomain}
	case "gender":
		return []string{p.Gender}
	case "ageGroup":
		return []string{p.AgeGroup}
	case "MBTI":
		return []string{p.MBTI}
	case "religion":
		return []string{p.Religion}
	case "smoking":
		return []string{p.Smoking}
	case "drinking":
		return []string{p.Drinking}
	case "personality":
		return p.Personality
	case "preferredPeople":
		return p.PreferredPeople
	case "currentInterests":
		return p.CurrentInterests
	case "favoriteFoods":
		return p.FavoriteFoods
	case "likedSports":
		return p.LikedSports
	case "pets":
		return p.Pets
	case "selfDevelopment":
		return p.SelfDevelopment
	case "hobbies":
		return p.Hobbies
	}
	return nil
}

// EmbeddingText renders the profile into the text representation embedded as
// the whole-profile vector. Enum codes are replaced with their display names
// so the embedding model sees natural language rather than constants.
func EmbeddingText(p *Profile) string {
	lines := make([]string, 0, len(TextFields))
	for _, field := range TextFields {
		values := DisplayValues(field, p.Field(field))
		lines = append(lines, field+": "+strings.Join(values, ", "))
	}
	return strings.Join(lines, "\n")
}

// FieldText renders a single embedding field into the text embedded as that
// field's vector. Returns "" when the field is empty.
func FieldText(p *Profile, field string) string {
	values := p.Field(field)
	if len(values) == 0 {
		return ""
	}
	return strings.Join(DisplayValues(field, values), ", ")
}
