package store

import "context"

// Record is one document of a collection: an id, an optional vector, and a
// flat string metadata map. Similarity maps and field embedding sets travel
// inside the metadata as serialized blobs (see codec.go).
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{ID: r.ID}
	if r.Vector != nil {
		out.Vector = make([]float32, len(r.Vector))
		copy(out.Vector, r.Vector)
	}
	if r.Metadata != nil {
		out.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Include selects which payload fields a read returns. Skipping vectors on
// metadata-only scans keeps the full-population reads cheap.
type Include struct {
	Vectors  bool
	Metadata bool
}

// IncludeAll requests both vectors and metadata.
var IncludeAll = Include{Vectors: true, Metadata: true}

// IncludeMetadata requests metadata only.
var IncludeMetadata = Include{Metadata: true}

// IncludeVectors requests vectors only.
var IncludeVectors = Include{Vectors: true}

// Driver is the per-collection vector/metadata store contract. There are no
// atomic multi-document transactions and no server-side filtering: callers
// read full populations and filter in-process.
type Driver interface {
	// GetRecords fetches the records with the given ids. Missing ids are
	// silently absent from the result.
	GetRecords(ctx context.Context, collection string, ids []string, include Include) ([]*Record, error)

	// ListRecords returns every record of the collection. No pagination.
	ListRecords(ctx context.Context, collection string, include Include) ([]*Record, error)

	// UpsertRecords inserts or replaces records by id.
	UpsertRecords(ctx context.Context, collection string, records []*Record) error

	// DeleteRecords removes the records with the given ids. Unknown ids are
	// not an error.
	DeleteRecords(ctx context.Context, collection string, ids []string) error

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
