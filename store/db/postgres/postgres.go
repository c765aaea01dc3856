// Package postgres implements the store driver on PostgreSQL with the
// pgvector extension.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection from the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	pgDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	pgDB.SetMaxOpenConns(25)
	pgDB.SetMaxIdleConns(5)
	pgDB.SetConnMaxLifetime(5 * time.Minute)

	driver := DB{db: pgDB, profile: profile}
	return &driver, nil
}

// Migrate provisions the pgvector extension and the record table. Every
// collection shares one table keyed by (collection, id); the vector column is
// typed to the configured embedding dimension, which is fixed for the
// lifetime of the index.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return errors.Wrap(err, "failed to create vector extension")
	}

	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS vector_record (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB NOT NULL DEFAULT '{}',
			updated_ts BIGINT NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`, d.profile.EmbeddingDimensions)
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to create vector_record table")
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.db.Close()
}
