package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesFileAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "lnchr.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	var count int
	r := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name IN ('records','items')")
	if err := r.Scan(&count); err != nil {
		t.Fatalf("query schema: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected tables 'records' and 'items' to exist, got %d", count)
	}

	// Basic smoke test: ensure we can insert a record
	if _, err := db.Exec("INSERT INTO records (position, name, created_at) VALUES (?, ?, ?)", 0, "testset", "2024-01-01 00:00:00"); err != nil {
		t.Fatalf("insert record failed: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	db, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = db.Close()
	db, err = Open(p)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	_ = db.Close()
}
