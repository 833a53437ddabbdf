// Package exporter writes registry records to a standalone store file.
package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/store"
)

// Export writes recs to dstPath. The format follows the extension: a JSON
// document for *.json, a SQLite database otherwise. An existing destination
// is replaced.
func Export(ctx context.Context, recs []registry.HistoryRecord, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	dst, err := store.Open(dstPath)
	if err != nil {
		return fmt.Errorf("open dst: %w", err)
	}
	if c, ok := dst.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	if err := dst.Save(ctx, recs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ExportRecord exports the single record named name. If no record has that
// name an error is returned.
func ExportRecord(ctx context.Context, reg *registry.Registry, name, dstPath string) error {
	i := reg.IndexOf(name)
	if i < 0 {
		return fmt.Errorf("record %q not found", name)
	}
	rec, err := reg.Record(i)
	if err != nil {
		return err
	}
	return Export(ctx, []registry.HistoryRecord{rec}, dstPath)
}
