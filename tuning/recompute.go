package tuning

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/store"
)

// RecomputeAll rebuilds every user's similarity map in one category partition
// from a single population snapshot. Unlike the registration sync there is no
// reverse propagation: each user's entry is written directly, so one full
// pass leaves the partition mutually consistent. Intended for administrative
// runs after scoring changes or partition backfills.
func (s *Service) RecomputeAll(ctx context.Context, category store.Category) (int, error) {
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()

	start := time.Now()
	pool, err := s.loadCandidates(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, self := range pool {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		scores := s.engine.ComputeScoresBatched(self, pool)
		record, err := store.BuildSimilarityRecord(self.ID, self.Embedding, scores)
		if err != nil {
			return written, errors.Wrapf(err, "build similarity record for %q", self.ID)
		}
		if err := s.Store.UpsertSimilarity(ctx, category, record); err != nil {
			return written, errors.Wrapf(err, "write similarity entry for %q", self.ID)
		}
		written++
	}

	slog.Info("recompute complete", "category", string(category),
		"users", written, "durationMs", time.Since(start).Milliseconds())
	return written, nil
}
