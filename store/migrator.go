package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/internal/version"
)

// systemCollection holds instance bookkeeping records, not user data.
const (
	systemCollection = "system_meta"
	instanceRecordID = "instance"

	MetaVersion = "version"
)

// pinVersion refuses to run an older binary against data written by a newer
// one, then records the current version. An empty stored version (fresh
// database or pre-versioning data) passes.
func (s *Store) pinVersion(ctx context.Context) error {
	records, err := s.driver.GetRecords(ctx, systemCollection, []string{instanceRecordID}, IncludeMetadata)
	if err != nil {
		return errors.Wrap(err, "read instance record")
	}

	if len(records) > 0 {
		stored := records[0].Metadata[MetaVersion]
		if stored != "" && !version.IsVersionGreaterOrEqualThan(s.profile.Version, stored) {
			return errors.Errorf("data was written by version %s, binary is %s; refusing downgrade", stored, s.profile.Version)
		}
	}

	record := &Record{
		ID:       instanceRecordID,
		Metadata: map[string]string{MetaVersion: s.profile.Version},
	}
	return errors.Wrap(s.driver.UpsertRecords(ctx, systemCollection, []*Record{record}), "write instance record")
}
