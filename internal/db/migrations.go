package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// performs lightweight post-creation migrations (adding new columns when needed).
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	// Ensure new columns exist on upgrades
	if err := ensureRecordColumns(db); err != nil {
		return err
	}
	return nil
}

// ensureRecordColumns adds optional columns missing from databases created by
// older releases. Rows that predate close_after_run read back as false.
func ensureRecordColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(records)")
	if err != nil {
		return err
	}
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			_ = rows.Close()
			return err
		}
		cols[name] = true
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if !cols["close_after_run"] {
		if _, err := db.Exec("ALTER TABLE records ADD COLUMN close_after_run INTEGER NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("add close_after_run: %w", err)
		}
	}
	return nil
}
