package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestTriggersRejectEmptyAndDuplicateInserts(t *testing.T) {
	// in-memory DB
	db, err := sql.Open("sqlite", "file:test_triggers?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := ApplyMigrations(db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	ins := "INSERT INTO records (position, name, created_at) VALUES (?, ?, '2024-01-01 00:00:00')"
	if _, err := db.Exec(ins, 0, "   "); err == nil {
		t.Fatalf("expected insert with empty name to be rejected by trigger")
	}
	if _, err := db.Exec(ins, 0, "valid"); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if _, err := db.Exec(ins, 1, "valid"); err == nil {
		t.Fatalf("expected duplicate insert to be rejected")
	}
	// names are case-sensitive
	if _, err := db.Exec(ins, 1, "Valid"); err != nil {
		t.Fatalf("case-distinct insert should succeed: %v", err)
	}
}

func TestNegativeDelayRejected(t *testing.T) {
	db, err := sql.Open("sqlite", "file:test_delay?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := ApplyMigrations(db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	res, err := db.Exec("INSERT INTO records (position, name, created_at) VALUES (0, 'r', 'now')")
	if err != nil {
		t.Fatalf("insert record: %v", err)
	}
	id, _ := res.LastInsertId()
	if _, err := db.Exec("INSERT INTO items (record_id, position, path, delay) VALUES (?, 1, '/a', -1)", id); err == nil {
		t.Fatalf("expected negative delay to be rejected")
	}
	if _, err := db.Exec("INSERT INTO items (record_id, position, path, delay) VALUES (?, 1, '  ', 0)", id); err == nil {
		t.Fatalf("expected empty path to be rejected")
	}
}
