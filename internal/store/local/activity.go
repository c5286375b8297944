package local

import (
	"context"

	"github.com/collabcloud/collab/internal/model"
)

// AppendActivity prepends an activity entry so retrieval is newest-first.
func (s *Store) AppendActivity(ctx context.Context, entry model.ActivityLogEntry) error {
	entries, err := readCollection[model.ActivityLogEntry](ctx, s, keyActivity)
	if err != nil {
		return err
	}

	entries = append([]model.ActivityLogEntry{entry}, entries...)
	return writeCollection(ctx, s, keyActivity, entries)
}

// ActivityLogs returns all entries, newest-first.
func (s *Store) ActivityLogs(ctx context.Context) ([]*model.ActivityLogEntry, error) {
	entries, err := readCollection[model.ActivityLogEntry](ctx, s, keyActivity)
	if err != nil {
		return nil, err
	}

	out := make([]*model.ActivityLogEntry, len(entries))
	for i := range entries {
		out[i] = &entries[i]
	}
	return out, nil
}

// ClearActivityLogs drops the whole activity collection.
func (s *Store) ClearActivityLogs(ctx context.Context) error {
	return s.deleteRaw(ctx, keyActivity)
}
