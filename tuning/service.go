// Package tuning orchestrates profile registration, deletion, and the
// denormalized similarity index that backs matching queries. Each user's
// similarity entry is kept eventually consistent with its peers through the
// sync pass in sync.go.
package tuning

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/younghak9905/2-hertz-ai/ai"
	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/matching"
	"github.com/younghak9905/2-hertz-ai/store"
)

// Service wires the score engine, the embedding provider, and the store into
// the caller-facing tuning operations.
type Service struct {
	Profile *profile.Profile
	Store   *store.Store

	embedder ai.EmbeddingService
	engine   *matching.Engine
	metrics  *Metrics

	// syncSem caps concurrent similarity sync passes; each pass reads the
	// whole population.
	syncSem *semaphore.Weighted

	// recomputeMu serializes batch recomputes against each other. Live
	// registrations are not blocked; the recompute works on a snapshot.
	recomputeMu sync.Mutex
}

// NewService creates a tuning service from validated configuration.
func NewService(p *profile.Profile, st *store.Store, embedder ai.EmbeddingService) (*Service, error) {
	combiner, err := matching.NewCombiner(matching.CombineStrategy(p.CombineStrategy), p.EmbeddingDimensions)
	if err != nil {
		return nil, errors.Wrap(err, "create combiner")
	}

	rule := matching.NewRuleScorer()
	rule.UnknownAge = matching.UnknownAgePolicy(p.UnknownAgePolicy)

	concurrency := p.SyncConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Service{
		Profile:  p,
		Store:    st,
		embedder: embedder,
		engine:   matching.NewEngine(rule, combiner),
		metrics:  NewMetrics(),
		syncSem:  semaphore.NewWeighted(int64(concurrency)),
	}, nil
}

// Metrics returns the service metrics set for HTTP export.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// loadCandidates reads the whole profile population as score engine
// candidates. Records with malformed field embedding blobs degrade to a
// profile-vector-only candidate.
func (s *Service) loadCandidates(ctx context.Context) ([]matching.Candidate, error) {
	records, err := s.Store.ListUsers(ctx, store.IncludeAll)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	pool := make([]matching.Candidate, 0, len(records))
	for _, record := range records {
		candidate, err := store.RecordCandidate(record)
		if err != nil {
			slog.Warn("malformed field embeddings, scoring on profile vector only",
				"userId", record.ID, "error", err)
		}
		pool = append(pool, candidate)
	}
	return pool, nil
}
