package store

import (
	"context"
	"time"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/store/cache"
)

// Store provides access to the profile collection and the per-category
// similarity partitions through an injected driver. It owns the driver's
// lifecycle: construct once, Close once, no ambient globals.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// userCache holds single-profile reads; similarity entries are never
	// cached because the sync passes read-modify-write them.
	userCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		userCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        1000,
		}),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.driver.Migrate(ctx); err != nil {
		return err
	}
	return s.pinVersion(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.driver.Ping(ctx)
}

func (s *Store) Close() error {
	s.userCache.Close()
	return s.driver.Close()
}

// GetUser fetches one full profile record, nil when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*Record, error) {
	if cached, ok := s.userCache.Get(id); ok {
		return cached.(*Record).Clone(), nil
	}

	records, err := s.driver.GetRecords(ctx, UserCollection, []string{id}, IncludeAll)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	s.userCache.Set(id, records[0].Clone())
	return records[0], nil
}

// GetUsers fetches multiple profile records by id.
func (s *Store) GetUsers(ctx context.Context, ids []string, include Include) ([]*Record, error) {
	return s.driver.GetRecords(ctx, UserCollection, ids, include)
}

// ListUsers returns the whole profile population.
func (s *Store) ListUsers(ctx context.Context, include Include) ([]*Record, error) {
	return s.driver.ListRecords(ctx, UserCollection, include)
}

// UpsertUser writes a profile record and invalidates its cache entry.
func (s *Store) UpsertUser(ctx context.Context, record *Record) error {
	if err := s.driver.UpsertRecords(ctx, UserCollection, []*Record{record}); err != nil {
		return err
	}
	s.userCache.Delete(record.ID)
	return nil
}

// DeleteUser removes a profile record.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := s.driver.DeleteRecords(ctx, UserCollection, []string{id}); err != nil {
		return err
	}
	s.userCache.Delete(id)
	return nil
}

// GetSimilarity fetches one similarity entry from a category partition, nil
// when absent.
func (s *Store) GetSimilarity(ctx context.Context, category Category, id string) (*Record, error) {
	records, err := s.driver.GetRecords(ctx, category.Collection(), []string{id}, IncludeAll)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// ListSimilarities returns every similarity entry of a category partition.
func (s *Store) ListSimilarities(ctx context.Context, category Category, include Include) ([]*Record, error) {
	return s.driver.ListRecords(ctx, category.Collection(), include)
}

// UpsertSimilarity writes a similarity entry into a category partition.
func (s *Store) UpsertSimilarity(ctx context.Context, category Category, record *Record) error {
	return s.driver.UpsertRecords(ctx, category.Collection(), []*Record{record})
}

// DeleteSimilarity removes a similarity entry from a category partition.
func (s *Store) DeleteSimilarity(ctx context.Context, category Category, id string) error {
	return s.driver.DeleteRecords(ctx, category.Collection(), []string{id})
}
