package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/store"
)

// GetRecords fetches records by id from one collection.
func (d *DB) GetRecords(ctx context.Context, collection string, ids []string, include store.Include) ([]*store.Record, error) {
	if len(ids) == 0 {
		return []*store.Record{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, collection)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := `
		SELECT id, embedding, metadata
		FROM vector_record
		WHERE collection = ? AND id IN (` + strings.Join(placeholders, ", ") + `)
	`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get records from %s", collection)
	}
	defer rows.Close()

	return scanRecords(rows, include)
}

// ListRecords returns every record of one collection.
func (d *DB) ListRecords(ctx context.Context, collection string, include store.Include) ([]*store.Record, error) {
	query := `
		SELECT id, embedding, metadata
		FROM vector_record
		WHERE collection = ?
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
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id)
		DO UPDATE SET
			embedding = excluded.embedding,
			metadata = excluded.metadata,
			updated_ts = excluded.updated_ts
	`
	now := time.Now().Unix()
	for _, record := range records {
		metadata, err := json.Marshal(record.Metadata)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal metadata for %s", record.ID)
		}

		var embedding any
		if record.Vector != nil {
			raw, err := json.Marshal(record.Vector)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal vector for %s", record.ID)
			}
			embedding = string(raw)
		}
		if _, err := d.db.ExecContext(ctx, stmt, collection, record.ID, embedding, string(metadata), now); err != nil {
			return errors.Wrapf(err, "failed to upsert record %s into %s", record.ID, collection)
		}
	}
	return nil
}

// DeleteRecords removes records by id.
func (d *DB) DeleteRecords(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, collection)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	stmt := `DELETE FROM vector_record WHERE collection = ? AND id IN (` + strings.Join(placeholders, ", ") + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrapf(err, "failed to delete records from %s", collection)
	}
	return nil
}

func scanRecords(rows *sql.Rows, include store.Include) ([]*store.Record, error) {
	list := []*store.Record{}
	for rows.Next() {
		var record store.Record
		var embedding, metadata sql.NullString
		if err := rows.Scan(&record.ID, &embedding, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}

		if include.Vectors && embedding.Valid && embedding.String != "" {
			if err := json.Unmarshal([]byte(embedding.String), &record.Vector); err != nil {
				return nil, errors.Wrapf(err, "failed to unmarshal vector for %s", record.ID)
			}
		}
		if include.Metadata {
			record.Metadata = map[string]string{}
			if metadata.Valid && metadata.String != "" {
				if err := json.Unmarshal([]byte(metadata.String), &record.Metadata); err != nil {
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
