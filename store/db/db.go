// Package db provides the store driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/store/db/memory"
	"github.com/younghak9905/2-hertz-ai/store/db/postgres"
	"github.com/younghak9905/2-hertz-ai/store/db/sqlite"
)

// NewDBDriver creates a new store driver based on the profile. Postgres with
// pgvector is the production driver; sqlite serves single-user development;
// memory backs demo mode and tests.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "postgres":
		return postgres.NewDB(profile)
	case "sqlite":
		return sqlite.NewDB(profile)
	case "memory":
		return memory.NewDB(), nil
	}
	return nil, errors.Errorf("unknown db driver %q", profile.Driver)
}
