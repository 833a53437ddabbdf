// Package importer loads records from an exported store file into the
// registry.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/store"
)

// Result reports what an import did. Renamed maps original names to the
// names they were imported under.
type Result struct {
	Imported int
	Renamed  map[string]string
}

// Read loads every record from srcPath, which must exist.
func Read(ctx context.Context, srcPath string) ([]registry.HistoryRecord, error) {
	if _, err := os.Stat(srcPath); err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	src, err := store.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	if c, ok := src.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	return src.Load(ctx)
}

// Import reads srcPath into reg. With overwrite the registry is replaced by
// the imported records. Otherwise they are appended, and colliding names get
// a "-import-N" suffix.
func Import(ctx context.Context, reg *registry.Registry, srcPath string, overwrite bool) (Result, error) {
	recs, err := Read(ctx, srcPath)
	if err != nil {
		return Result{}, err
	}
	if overwrite {
		if err := reg.ReplaceAll(ctx, recs); err != nil {
			return Result{}, err
		}
		return Result{Imported: len(recs)}, nil
	}

	res := Result{Renamed: map[string]string{}}
	taken := make(map[string]bool, reg.Len()+len(recs))
	for _, h := range reg.Records() {
		taken[h.Name] = true
	}
	for i := range recs {
		u := ensureUniqueName(taken, recs[i].Name)
		if u != recs[i].Name {
			res.Renamed[recs[i].Name] = u
			recs[i].Name = u
		}
		taken[u] = true
	}
	if err := reg.Append(ctx, recs...); err != nil {
		return Result{}, err
	}
	res.Imported = len(recs)
	return res, nil
}

func ensureUniqueName(taken map[string]bool, orig string) string {
	name := orig
	for si := 1; taken[name]; si++ {
		name = fmt.Sprintf("%s-import-%d", orig, si)
	}
	return name
}
