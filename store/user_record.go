package store

import (
	"strings"

	"github.com/younghak9905/2-hertz-ai/matching"
)

// Metadata keys of the user profile collection. Every value is a flat
// string; tag lists are ", "-joined, the field embedding set is a codec blob.
const (
	MetaUserID          = "userId"
	MetaEmailDomain     = "emailDomain"
	MetaGender          = "gender"
	MetaAgeGroup        = "ageGroup"
	MetaMBTI            = "MBTI"
	MetaReligion        = "religion"
	MetaSmoking         = "smoking"
	MetaDrinking        = "drinking"
	MetaFieldEmbeddings = "field_embeddings"
	MetaSimilarities    = "similarities"
)

const tagSeparator = ", "

var tagMetadataKeys = []string{
	"personality",
	"preferredPeople",
	"currentInterests",
	"favoriteFoods",
	"likedSports",
	"pets",
	"selfDevelopment",
	"hobbies",
}

// BuildUserRecord flattens a profile plus its vectors into a store record.
func BuildUserRecord(p *matching.Profile, embedding []float32, fieldEmbeddings map[string][]float32) (*Record, error) {
	blob, err := EncodeFieldEmbeddings(fieldEmbeddings)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		MetaUserID:          p.UserID,
		MetaEmailDomain:     p.EmailDomain,
		MetaGender:          p.Gender,
		MetaAgeGroup:        p.AgeGroup,
		MetaMBTI:            p.MBTI,
		MetaReligion:        p.Religion,
		MetaSmoking:         p.Smoking,
		MetaDrinking:        p.Drinking,
		MetaFieldEmbeddings: blob,
	}
	for _, key := range tagMetadataKeys {
		metadata[key] = strings.Join(p.Field(key), tagSeparator)
	}

	return &Record{ID: p.UserID, Vector: embedding, Metadata: metadata}, nil
}

// splitTags undoes the ", " join. Empty metadata yields a nil slice.
func splitTags(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, tagSeparator)
}

// RecordAttributes extracts the rule-scoring attributes from a user record's
// metadata.
func RecordAttributes(metadata map[string]string) matching.Attributes {
	return matching.Attributes{
		MBTI:            metadata[MetaMBTI],
		AgeGroup:        metadata[MetaAgeGroup],
		Religion:        metadata[MetaReligion],
		Smoking:         metadata[MetaSmoking],
		Drinking:        metadata[MetaDrinking],
		Personality:     splitTags(metadata["personality"]),
		PreferredPeople: splitTags(metadata["preferredPeople"]),
	}
}

// RecordCandidate converts a stored user record into a score engine
// candidate. A malformed field embedding blob degrades to an empty set; the
// caller decides whether to log.
func RecordCandidate(r *Record) (matching.Candidate, error) {
	fields, err := DecodeFieldEmbeddings(r.Metadata[MetaFieldEmbeddings])
	if err != nil {
		fields = map[string][]float32{}
	}
	return matching.Candidate{
		ID:              r.ID,
		EmailDomain:     r.Metadata[MetaEmailDomain],
		Attrs:           RecordAttributes(r.Metadata),
		Embedding:       r.Vector,
		FieldEmbeddings: fields,
	}, err
}
