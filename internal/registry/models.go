// Package registry provides the ordered, durable collection of named
// history records.
package registry

import (
	"context"

	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// TimeLayout is the format of HistoryRecord.CreatedAt.
const TimeLayout = "2006-01-02 15:04:05"

// HistoryRecord is a named, saved snapshot of a Task List.
type HistoryRecord struct {
	Name          string
	Items         []tasklist.Item
	CloseAfterRun bool
	CreatedAt     string
}

// Clone returns a deep copy of the record.
func (h HistoryRecord) Clone() HistoryRecord {
	h.Items = tasklist.Clone(h.Items)
	return h
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(in []HistoryRecord) []HistoryRecord {
	if in == nil {
		return nil
	}
	out := make([]HistoryRecord, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}

// Store persists the whole registry at once. Implementations live in
// internal/store.
type Store interface {
	Load(ctx context.Context) ([]HistoryRecord, error)
	Save(ctx context.Context, records []HistoryRecord) error
}
