// Package memory implements the store driver in process memory. It backs
// demo mode and tests; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/younghak9905/2-hertz-ai/store"
)

type DB struct {
	mu          sync.RWMutex
	collections map[string]map[string]*store.Record
}

// NewDB creates an empty in-memory driver.
func NewDB() store.Driver {
	return &DB{collections: make(map[string]map[string]*store.Record)}
}

func (d *DB) GetRecords(_ context.Context, collection string, ids []string, include store.Include) ([]*store.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := []*store.Record{}
	docs := d.collections[collection]
	for _, id := range ids {
		if record, ok := docs[id]; ok {
			list = append(list, project(record, include))
		}
	}
	return list, nil
}

func (d *DB) ListRecords(_ context.Context, collection string, include store.Include) ([]*store.Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	docs := d.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]*store.Record, 0, len(ids))
	for _, id := range ids {
		list = append(list, project(docs[id], include))
	}
	return list, nil
}

func (d *DB) UpsertRecords(_ context.Context, collection string, records []*store.Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	docs, ok := d.collections[collection]
	if !ok {
		docs = make(map[string]*store.Record)
		d.collections[collection] = docs
	}
	for _, record := range records {
		docs[record.ID] = record.Clone()
	}
	return nil
}

func (d *DB) DeleteRecords(_ context.Context, collection string, ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	docs := d.collections[collection]
	for _, id := range ids {
		delete(docs, id)
	}
	return nil
}

func (d *DB) Migrate(context.Context) error { return nil }

func (d *DB) Ping(context.Context) error { return nil }

func (d *DB) Close() error { return nil }

// project clones a record restricted to the included payload fields.
func project(record *store.Record, include store.Include) *store.Record {
	out := record.Clone()
	if !include.Vectors {
		out.Vector = nil
	}
	if !include.Metadata {
		out.Metadata = nil
	}
	return out
}
