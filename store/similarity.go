package store

// BuildSimilarityRecord assembles one user's similarity entry. The profile
// embedding rides along as the record vector so reverse-propagation passes
// can initialize a peer's entry without a second profile read.
func BuildSimilarityRecord(userID string, embedding []float32, similarities map[string]float64) (*Record, error) {
	blob, err := EncodeSimilarityMap(similarities)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:     userID,
		Vector: embedding,
		Metadata: map[string]string{
			MetaUserID:       userID,
			MetaSimilarities: blob,
		},
	}, nil
}

// SimilarityMap parses the score map out of a similarity record. A malformed
// blob returns an empty map alongside ErrMalformedBlob so the caller can log
// and continue.
func SimilarityMap(r *Record) (map[string]float64, error) {
	m, err := DecodeSimilarityMap(r.Metadata[MetaSimilarities])
	if err != nil {
		return map[string]float64{}, err
	}
	return m, nil
}
