package tuning

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/matching"
	"github.com/younghak9905/2-hertz-ai/store"
)

// syncSimilarity brings one user's similarity entry and its peer mirrors up
// to date inside a category partition. Five steps:
//
//  1. Compute every pairwise score against the current population.
//  2. Write the user's own entry.
//  3. Propagate the reverse direction into each peer's entry, best effort.
//  4. Enrich the user's map with scores peers hold about the user.
//  5. Write the user's entry again with the enriched map.
//
// Steps 1, 2, and 5 fail the pass; steps 3 and 4 skip the failing peer and
// continue. Concurrent passes over the same peer resolve last-writer-wins;
// a later Enrich pass heals whichever direction lost.
func (s *Service) syncSimilarity(ctx context.Context, category store.Category, self matching.Candidate, pool []matching.Candidate) error {
	if err := s.syncSem.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "acquire sync slot")
	}
	defer s.syncSem.Release(1)

	start := time.Now()
	traceID := uuid.NewString()
	log := slog.With("traceId", traceID, "userId", self.ID, "category", string(category))

	// Step 1: compute.
	scores := s.engine.ComputeScoresBatched(self, pool)

	// Step 2: write self.
	record, err := store.BuildSimilarityRecord(self.ID, self.Embedding, scores)
	if err != nil {
		return errors.Wrap(err, "build similarity record")
	}
	if err := s.Store.UpsertSimilarity(ctx, category, record); err != nil {
		return errors.Wrap(err, "write similarity entry")
	}

	// Step 3: propagate reverse. The score is symmetric, so the value pushed
	// into the peer's map equals the one just computed.
	peerByID := make(map[string]matching.Candidate, len(pool))
	for _, peer := range pool {
		peerByID[peer.ID] = peer
	}
	for peerID, score := range scores {
		if err := s.propagateReverse(ctx, category, self.ID, peerByID[peerID], score); err != nil {
			s.metrics.propagationSkips.Inc()
			log.Warn("reverse propagation skipped", "peerId", peerID, "error", err)
		}
	}

	// Step 4: enrich self from peer entries.
	enriched := s.enrichScores(ctx, category, self.ID, scores, log)

	// Step 5: write self with the enriched map.
	record, err = store.BuildSimilarityRecord(self.ID, self.Embedding, enriched)
	if err != nil {
		return errors.Wrap(err, "build enriched similarity record")
	}
	if err := s.Store.UpsertSimilarity(ctx, category, record); err != nil {
		return errors.Wrap(err, "write enriched similarity entry")
	}

	s.metrics.syncLatency.WithLabelValues(string(category)).Observe(time.Since(start).Seconds())
	log.Info("similarity sync complete", "peers", len(scores), "durationMs", time.Since(start).Milliseconds())
	return nil
}

// propagateReverse writes score into the peer's similarity map under selfID.
// A peer without an entry yet gets one seeded from its profile embedding.
// Writing the value already present is skipped.
func (s *Service) propagateReverse(ctx context.Context, category store.Category, selfID string, peer matching.Candidate, score float64) error {
	entry, err := s.Store.GetSimilarity(ctx, category, peer.ID)
	if err != nil {
		return errors.Wrap(err, "read peer entry")
	}

	var peerScores map[string]float64
	var vector []float32
	if entry == nil {
		peerScores = map[string]float64{}
		vector = peer.Embedding
	} else {
		peerScores, err = store.SimilarityMap(entry)
		if err != nil {
			slog.Warn("malformed peer similarity blob, rebuilding", "peerId", peer.ID, "error", err)
		}
		vector = entry.Vector
	}

	if existing, ok := peerScores[selfID]; ok && existing == score {
		return nil
	}
	peerScores[selfID] = score

	record, err := store.BuildSimilarityRecord(peer.ID, vector, peerScores)
	if err != nil {
		return errors.Wrap(err, "build peer record")
	}
	return errors.Wrap(s.Store.UpsertSimilarity(ctx, category, record), "write peer entry")
}

// enrichScores overlays scores peers hold about selfID onto the freshly
// computed map. Peer reads that fail are skipped; the own computation remains
// authoritative for peers it already covers.
func (s *Service) enrichScores(ctx context.Context, category store.Category, selfID string, scores map[string]float64, log *slog.Logger) map[string]float64 {
	entries, err := s.Store.ListSimilarities(ctx, category, store.IncludeMetadata)
	if err != nil {
		log.Warn("enrich pass skipped", "error", err)
		return scores
	}

	enriched := make(map[string]float64, len(scores))
	for id, score := range scores {
		enriched[id] = score
	}
	for _, entry := range entries {
		if entry.ID == selfID {
			continue
		}
		peerScores, err := store.SimilarityMap(entry)
		if err != nil {
			log.Warn("malformed peer blob during enrich", "peerId", entry.ID, "error", err)
			continue
		}
		score, ok := peerScores[selfID]
		if !ok {
			continue
		}
		if _, covered := enriched[entry.ID]; !covered {
			enriched[entry.ID] = score
		}
	}
	return enriched
}
