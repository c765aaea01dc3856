package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/matching"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/store/db/memory"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(memory.NewDB(), &profile.Profile{Mode: "demo", Driver: "memory"})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleProfile(id string) *matching.Profile {
	return &matching.Profile{
		UserID:           id,
		EmailDomain:      "example.com",
		Gender:           "MALE",
		AgeGroup:         "AGE_20S",
		MBTI:             "ESTP",
		Religion:         "NON_RELIGIOUS",
		Smoking:          "NO_SMOKING",
		Drinking:         "SOMETIMES",
		Personality:      []string{"KIND", "NICE_VOICE"},
		PreferredPeople:  []string{"KIND"},
		CurrentInterests: []string{"DRAWING"},
		FavoriteFoods:    []string{"FRUIT"},
		LikedSports:      []string{"SOCCER"},
		Pets:             []string{"DOG"},
		SelfDevelopment:  []string{"READING"},
		Hobbies:          []string{"GAMING"},
	}
}

func TestUserRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := sampleProfile("1")
	fields := map[string][]float32{"hobbies": {0.5, 0.5}}
	record, err := store.BuildUserRecord(p, []float32{1, 0}, fields)
	require.NoError(t, err)
	require.NoError(t, s.UpsertUser(ctx, record))

	got, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []float32{1, 0}, got.Vector)
	assert.Equal(t, "example.com", got.Metadata[store.MetaEmailDomain])
	assert.Equal(t, "KIND, NICE_VOICE", got.Metadata["personality"])

	candidate, err := store.RecordCandidate(got)
	require.NoError(t, err)
	assert.Equal(t, "1", candidate.ID)
	assert.Equal(t, "ESTP", candidate.Attrs.MBTI)
	assert.Equal(t, []string{"KIND", "NICE_VOICE"}, candidate.Attrs.Personality)
	assert.Equal(t, fields, candidate.FieldEmbeddings)
}

func TestGetUserAbsent(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetUser(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUserCachedCopyIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	record, err := store.BuildUserRecord(sampleProfile("1"), []float32{1, 0}, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertUser(ctx, record))

	first, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	first.Metadata[store.MetaMBTI] = "MUTATED"

	second, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "ESTP", second.Metadata[store.MetaMBTI])
}

func TestUpsertUserInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	record, err := store.BuildUserRecord(sampleProfile("1"), []float32{1, 0}, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertUser(ctx, record))

	_, err = s.GetUser(ctx, "1")
	require.NoError(t, err)

	p := sampleProfile("1")
	p.MBTI = "INFJ"
	updated, err := store.BuildUserRecord(p, []float32{0, 1}, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertUser(ctx, updated))

	got, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "INFJ", got.Metadata[store.MetaMBTI])
}

func TestSimilarityPartitionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	record, err := store.BuildSimilarityRecord("1", []float32{1, 0}, map[string]float64{"2": 0.9})
	require.NoError(t, err)
	require.NoError(t, s.UpsertSimilarity(ctx, store.CategoryFriend, record))

	got, err := s.GetSimilarity(ctx, store.CategoryFriend, "1")
	require.NoError(t, err)
	require.NotNil(t, got)

	scores, err := store.SimilarityMap(got)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2": 0.9}, scores)

	other, err := s.GetSimilarity(ctx, store.CategoryDefault, "1")
	require.NoError(t, err)
	assert.Nil(t, other)

	couple, err := s.GetSimilarity(ctx, store.CategoryCouple, "1")
	require.NoError(t, err)
	assert.Nil(t, couple)
}

func TestDeleteSimilarity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	record, err := store.BuildSimilarityRecord("1", nil, map[string]float64{"2": 0.9})
	require.NoError(t, err)
	require.NoError(t, s.UpsertSimilarity(ctx, store.CategoryDefault, record))
	require.NoError(t, s.DeleteSimilarity(ctx, store.CategoryDefault, "1"))

	got, err := s.GetSimilarity(ctx, store.CategoryDefault, "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMigrateRefusesVersionDowngrade(t *testing.T) {
	ctx := context.Background()
	driver := memory.NewDB()

	at := func(v string) *store.Store {
		s := store.New(driver, &profile.Profile{Mode: "prod", Driver: "memory", Version: v})
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	require.NoError(t, at("0.2.0").Migrate(ctx))

	err := at("0.1.0").Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing downgrade")

	// Same or newer binaries pass and re-pin.
	require.NoError(t, at("0.2.0").Migrate(ctx))
	require.NoError(t, at("0.3.0").Migrate(ctx))
}

func TestListUsersProjection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"2", "1"} {
		record, err := store.BuildUserRecord(sampleProfile(id), []float32{1, 0}, nil)
		require.NoError(t, err)
		require.NoError(t, s.UpsertUser(ctx, record))
	}

	records, err := s.ListUsers(ctx, store.IncludeMetadata)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)
	assert.Nil(t, records[0].Vector)
	assert.NotNil(t, records[0].Metadata)
}
