package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/store"
)

// GetRecords fetches records by id from one collection.
func (d *DB) GetRecords(ctx context.Context, collection string, ids []string, include store.Include) ([]*store.Record, error) {
	if len(ids) == 0 {
		return []*store.Record{}, nil
	}

	query := `
		SELECT id, ` + selectColumns(include) + `
		FROM vector_record
		WHERE collection = $1 AND id = ANY($2)
	`
	rows, err := d.db.QueryContext(ctx, query, collection, pq.Array(ids))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get records from %s", collection)
	}
	defer rows.Close()

	return scanRecords(rows, include)
}

// ListRecords returns every record of one collection. No pagination: the
// sync passes need the full population anyway.
func (d *DB) ListRecords(ctx context.Context, collection string, include store.Include) ([]*store.Record, error) {
	query := `
		SELECT id, ` + selectColumns(include) + `
		FROM vector_record
		WHERE collection = $1
		ORDER BY id
	`
	rows, err := d.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list records of %s", collection)
	}
	defer rows.Close()

	return scanRecords(rows, include)
}

// UpsertRecords inserts or replaces records by id.
func (d *DB) UpsertRecords(ctx context.Context, collection string, records []*store.Record) error {
	stmt := `
		INSERT INTO vector_record (collection, id, embedding, metadata, updated_ts)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id)
		DO UPDATE SET
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata,
			updated_ts = EXCLUDED.updated_ts
	`
	now := time.Now().Unix()
	for _, record := range records {
		metadata, err := json.Marshal(record.Metadata)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal metadata for %s", record.ID)
		}

		var embedding any
		if record.Vector != nil {
			embedding = pgvector.NewVector(record.Vector)
		}
		if _, err := d.db.ExecContext(ctx, stmt, collection, record.ID, embedding, metadata, now); err != nil {
			return errors.Wrapf(err, "failed to upsert record %s into %s", record.ID, collection)
		}
	}
	return nil
}

// DeleteRecords removes records by id. Unknown ids are not an error.
func (d *DB) DeleteRecords(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt := `DELETE FROM vector_record WHERE collection = $1 AND id = ANY($2)`
	if _, err := d.db.ExecContext(ctx, stmt, collection, pq.Array(ids)); err != nil {
		return errors.Wrapf(err, "failed to delete records from %s", collection)
	}
	return nil
}

func selectColumns(include store.Include) string {
	columns := "NULL, NULL"
	switch {
	case include.Vectors && include.Metadata:
		columns = "embedding, metadata"
	case include.Vectors:
		columns = "embedding, NULL"
	case include.Metadata:
		columns = "NULL, metadata"
	}
	return columns
}

func scanRecords(rows *sql.Rows, include store.Include) ([]*store.Record, error) {
	list := []*store.Record{}
	for rows.Next() {
		var record store.Record
		var vector *pgvector.Vector
		var metadata []byte
		if err := rows.Scan(&record.ID, &vector, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}

		if include.Vectors && vector != nil {
			record.Vector = vector.Slice()
		}
		if include.Metadata {
			record.Metadata = map[string]string{}
			if len(metadata) > 0 {
				if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
					return nil, errors.Wrapf(err, "failed to unmarshal metadata for %s", record.ID)
				}
			}
		}
		list = append(list, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
