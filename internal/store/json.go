package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// Document is the on-disk JSON layout. It is compatible with
// launcher_data.json files written by earlier desktop releases.
type Document struct {
	HistoryRecords []DocumentRecord `json:"history_records"`
}

// DocumentRecord is one history record inside a Document. A missing
// close_after_run decodes as false.
type DocumentRecord struct {
	Name          string          `json:"name"`
	Files         []tasklist.Item `json:"files"`
	CloseAfterRun bool            `json:"close_after_run"`
	CreateTime    string          `json:"create_time"`
}

// NewDocument converts registry records into a Document.
func NewDocument(recs []registry.HistoryRecord) Document {
	doc := Document{HistoryRecords: make([]DocumentRecord, 0, len(recs))}
	for _, h := range recs {
		files := tasklist.FromItems(h.Items).Snapshot().Items()
		if files == nil {
			files = []tasklist.Item{}
		}
		doc.HistoryRecords = append(doc.HistoryRecords, DocumentRecord{
			Name:          h.Name,
			Files:         files,
			CloseAfterRun: h.CloseAfterRun,
			CreateTime:    h.CreatedAt,
		})
	}
	return doc
}

// Records converts a Document back into registry records, re-deriving item
// order from position.
func (d Document) Records() []registry.HistoryRecord {
	out := make([]registry.HistoryRecord, 0, len(d.HistoryRecords))
	for _, r := range d.HistoryRecords {
		out = append(out, registry.HistoryRecord{
			Name:          r.Name,
			Items:         tasklist.FromItems(r.Files).Snapshot().Items(),
			CloseAfterRun: r.CloseAfterRun,
			CreatedAt:     r.CreateTime,
		})
	}
	return out
}

// DecodeDocument reads a Document from r. Empty input is an empty registry.
func DecodeDocument(r io.Reader) ([]registry.HistoryRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Storage("store.decode", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Storage("store.decode", err)
	}
	recs := doc.Records()
	if err := checkRecords("store.decode", recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// EncodeDocument writes recs as an indented Document to w.
func EncodeDocument(w io.Writer, recs []registry.HistoryRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(recs)); err != nil {
		return errs.Storage("store.encode", err)
	}
	return nil
}

// JSON stores the registry as a single JSON document.
type JSON struct {
	path string
}

// NewJSON returns a JSON store at path. Nothing is touched until Load/Save.
func NewJSON(path string) *JSON { return &JSON{path: path} }

// Path returns the document location.
func (j *JSON) Path() string { return j.path }

// Load reads the document. A missing file yields an empty registry.
func (j *JSON) Load(ctx context.Context) ([]registry.HistoryRecord, error) {
	if err := ctxErr(ctx, "store.load"); err != nil {
		return nil, err
	}
	f, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("store.load", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeDocument(f)
}

// Save writes the whole registry to a temp file next to the target and
// renames it into place, so readers never observe a partial document.
func (j *JSON) Save(ctx context.Context, recs []registry.HistoryRecord) error {
	if err := ctxErr(ctx, "store.save"); err != nil {
		return err
	}
	if err := checkRecords("store.save", recs); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, recs); err != nil {
		return err
	}
	if err := writeFileAtomic(j.path, buf.Bytes(), 0o644); err != nil {
		return errs.Storage("store.save", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry after a rename. Not every platform
// supports syncing a directory handle, so failures are ignored.
func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = f.Sync()
	_ = f.Close()
}
