package tuning

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/matching"
	"github.com/younghak9905/2-hertz-ai/store"
)

// Register embeds a new profile, persists it, and synchronizes the default
// similarity partition. Registering an existing id returns ErrDuplicateUser;
// attributes are never silently replaced.
func (s *Service) Register(ctx context.Context, p *matching.Profile) error {
	existing, err := s.Store.GetUser(ctx, p.UserID)
	if err != nil {
		return errors.Wrap(err, "duplicate check")
	}
	if existing != nil {
		s.metrics.registrations.WithLabelValues("duplicate").Inc()
		return ErrDuplicateUser
	}

	embedding, fieldEmbeddings, err := s.embedProfile(ctx, p)
	if err != nil {
		s.metrics.registrations.WithLabelValues("error").Inc()
		return err
	}

	record, err := store.BuildUserRecord(p, embedding, fieldEmbeddings)
	if err != nil {
		return errors.Wrap(err, "build user record")
	}
	if err := s.Store.UpsertUser(ctx, record); err != nil {
		s.metrics.registrations.WithLabelValues("error").Inc()
		return errors.Wrap(err, "store user")
	}

	pool, err := s.loadCandidates(ctx)
	if err != nil {
		return err
	}
	self := matching.Candidate{
		ID:              p.UserID,
		EmailDomain:     p.EmailDomain,
		Attrs:           p.Attributes(),
		Embedding:       embedding,
		FieldEmbeddings: fieldEmbeddings,
	}
	if err := s.syncSimilarity(ctx, store.CategoryDefault, self, pool); err != nil {
		s.metrics.registrations.WithLabelValues("error").Inc()
		return err
	}

	s.metrics.registrations.WithLabelValues("created").Inc()
	return nil
}

// embedProfile generates the whole-profile vector and one vector per
// non-empty embedding field in a single batch call.
func (s *Service) embedProfile(ctx context.Context, p *matching.Profile) ([]float32, map[string][]float32, error) {
	texts := []string{matching.EmbeddingText(p)}
	fieldNames := []string{}
	for _, field := range matching.EmbeddingFields {
		text := matching.FieldText(p, field)
		if text == "" {
			continue
		}
		texts = append(texts, text)
		fieldNames = append(fieldNames, field)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "embed profile")
	}
	if len(vectors) != len(texts) {
		return nil, nil, errors.Errorf("embedding count mismatch: want %d got %d", len(texts), len(vectors))
	}

	fieldEmbeddings := make(map[string][]float32, len(fieldNames))
	for i, field := range fieldNames {
		fieldEmbeddings[field] = vectors[i+1]
	}
	return vectors[0], fieldEmbeddings, nil
}

// Delete removes a profile and every trace of it in the similarity index:
// the user's own entry in each category partition plus the mirrored score
// other users hold about it. Mirror cleanup is best effort; a skipped peer
// does not fail the deletion.
func (s *Service) Delete(ctx context.Context, userID string) error {
	existing, err := s.Store.GetUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "exists check")
	}
	if existing == nil {
		return ErrUserNotFound
	}

	for _, category := range store.Categories {
		removed := s.removeMirrors(ctx, category, userID)
		if removed > 0 {
			slog.Info("mirrored entries removed", "userId", userID,
				"category", string(category), "count", removed)
		}
		if err := s.Store.DeleteSimilarity(ctx, category, userID); err != nil {
			return errors.Wrapf(err, "delete similarity entry in %q", category.Collection())
		}
	}

	if err := s.Store.DeleteUser(ctx, userID); err != nil {
		return errors.Wrap(err, "delete user")
	}
	s.metrics.deletions.Inc()
	return nil
}

// removeMirrors strips userID from every peer's similarity map in one
// category partition and reports how many entries were rewritten.
func (s *Service) removeMirrors(ctx context.Context, category store.Category, userID string) int {
	entries, err := s.Store.ListSimilarities(ctx, category, store.IncludeAll)
	if err != nil {
		slog.Warn("mirror cleanup skipped", "userId", userID,
			"category", string(category), "error", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.ID == userID {
			continue
		}
		peerScores, err := store.SimilarityMap(entry)
		if err != nil {
			slog.Warn("malformed peer blob during cleanup", "peerId", entry.ID, "error", err)
			continue
		}
		if _, ok := peerScores[userID]; !ok {
			continue
		}
		delete(peerScores, userID)

		record, err := store.BuildSimilarityRecord(entry.ID, entry.Vector, peerScores)
		if err != nil {
			slog.Warn("mirror rewrite failed", "peerId", entry.ID, "error", err)
			continue
		}
		if err := s.Store.UpsertSimilarity(ctx, category, record); err != nil {
			slog.Warn("mirror rewrite failed", "peerId", entry.ID, "error", err)
			continue
		}
		removed++
		s.metrics.mirrorRemovals.Inc()
	}
	return removed
}
