// Package store persists the record registry. Two backends share one
// contract: Save replaces the whole registry atomically, Load returns an
// empty registry when nothing was stored yet.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/registry"
)

var (
	_ registry.Store = (*SQLite)(nil)
	_ registry.Store = (*JSON)(nil)
)

// Open returns the backend for path: a JSON document for *.json, SQLite
// otherwise. The caller closes the result when it implements io.Closer.
func Open(path string) (registry.Store, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSON(path), nil
	}
	return OpenSQLite(path)
}

// checkRecords rejects content that would break registry invariants.
func checkRecords(op string, recs []registry.HistoryRecord) error {
	seen := make(map[string]bool, len(recs))
	for i, h := range recs {
		if strings.TrimSpace(h.Name) == "" {
			return errs.Storage(op, fmt.Errorf("record %d has an empty name", i))
		}
		if seen[h.Name] {
			return errs.Storage(op, fmt.Errorf("duplicate record name %q", h.Name))
		}
		seen[h.Name] = true
	}
	return nil
}

func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return errs.Storage(op, err)
	}
	return nil
}
