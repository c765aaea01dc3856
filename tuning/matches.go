package tuning

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/store"
)

// Match is one scored candidate of a matching query.
type Match struct {
	UserID string
	Score  float64
}

// GetMatches returns the top-k candidates for a user within a category
// partition, sorted by score descending. Candidates whose profile no longer
// exists are filtered out. ErrUserNotFound when the user has no profile,
// ErrNoSimilarity when nothing is scored yet.
func (s *Service) GetMatches(ctx context.Context, userID string, category store.Category) ([]Match, error) {
	user, err := s.Store.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "read user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	entry, err := s.Store.GetSimilarity(ctx, category, userID)
	if err != nil {
		return nil, errors.Wrap(err, "read similarity entry")
	}
	if entry == nil {
		return nil, ErrNoSimilarity
	}

	scores, err := store.SimilarityMap(entry)
	if err != nil {
		slog.Warn("malformed similarity blob", "userId", userID, "error", err)
	}
	if len(scores) == 0 {
		return nil, ErrNoSimilarity
	}

	matches := make([]Match, 0, len(scores))
	for id, score := range scores {
		matches = append(matches, Match{UserID: id, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].UserID < matches[j].UserID
	})

	topK := s.Profile.MatchTopK
	if topK <= 0 {
		topK = 100
	}
	if len(matches) > topK {
		matches = matches[:topK]
	}

	matches, err = s.filterExisting(ctx, matches)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoSimilarity
	}
	return matches, nil
}

// filterExisting drops candidates whose profile record has been deleted
// since their score was written.
func (s *Service) filterExisting(ctx context.Context, matches []Match) ([]Match, error) {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.UserID
	}

	records, err := s.Store.GetUsers(ctx, ids, store.IncludeMetadata)
	if err != nil {
		return nil, errors.Wrap(err, "read candidate profiles")
	}
	exists := make(map[string]bool, len(records))
	for _, record := range records {
		exists[record.ID] = true
	}

	kept := matches[:0]
	for _, m := range matches {
		if exists[m.UserID] {
			kept = append(kept, m)
		}
	}
	return kept, nil
}
