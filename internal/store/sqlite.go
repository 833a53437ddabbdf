package store

import (
	"context"
	"database/sql"

	"github.com/VoxDroid/lnchr/internal/db"
	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// SQLite stores the registry in two tables, records and items. Save replaces
// every row inside one transaction.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, errs.Storage("store.open", err)
	}
	return &SQLite{db: conn}, nil
}

// NewSQLite wraps an already-migrated connection.
func NewSQLite(conn *sql.DB) *SQLite { return &SQLite{db: conn} }

// Close closes the underlying DB connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads all records in registry order with their items.
func (s *SQLite) Load(ctx context.Context) ([]registry.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, close_after_run, created_at FROM records ORDER BY position ASC, id ASC")
	if err != nil {
		return nil, errs.Storage("store.load", err)
	}
	var ids []int64
	var out []registry.HistoryRecord
	for rows.Next() {
		var id int64
		var h registry.HistoryRecord
		var car sql.NullBool
		if err := rows.Scan(&id, &h.Name, &car, &h.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, errs.Storage("store.load", err)
		}
		h.CloseAfterRun = car.Valid && car.Bool
		ids = append(ids, id)
		out = append(out, h)
	}
	if err := rows.Close(); err != nil {
		return nil, errs.Storage("store.load", err)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("store.load", err)
	}
	for i, id := range ids {
		items, err := s.loadItems(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	if err := checkRecords("store.load", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) loadItems(ctx context.Context, recordID int64) ([]tasklist.Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, delay FROM items WHERE record_id = ? ORDER BY position ASC, id ASC", recordID)
	if err != nil {
		return nil, errs.Storage("store.load", err)
	}
	defer func() { _ = rows.Close() }()
	var items []tasklist.Item
	for rows.Next() {
		var it tasklist.Item
		if err := rows.Scan(&it.Path, &it.Delay); err != nil {
			return nil, errs.Storage("store.load", err)
		}
		it.Order = len(items) + 1
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("store.load", err)
	}
	return items, nil
}

// Save replaces the stored registry with recs. Either every row is written
// or, on failure, the previous contents remain.
func (s *SQLite) Save(ctx context.Context, recs []registry.HistoryRecord) error {
	if err := checkRecords("store.save", recs); err != nil {
		return err
	}
	trx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Storage("store.save", err)
	}
	defer func() { _ = trx.Rollback() }()

	if _, err := trx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return errs.Storage("store.save", err)
	}
	if _, err := trx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return errs.Storage("store.save", err)
	}
	for pos, h := range recs {
		res, err := trx.ExecContext(ctx, "INSERT INTO records (position, name, close_after_run, created_at) VALUES (?, ?, ?, ?)",
			pos, h.Name, h.CloseAfterRun, h.CreatedAt)
		if err != nil {
			return errs.Storage("store.save", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errs.Storage("store.save", err)
		}
		for i, it := range h.Items {
			if _, err := trx.ExecContext(ctx, "INSERT INTO items (record_id, position, path, delay) VALUES (?, ?, ?, ?)",
				id, i+1, it.Path, it.Delay); err != nil {
				return errs.Storage("store.save", err)
			}
		}
	}
	if err := trx.Commit(); err != nil {
		return errs.Storage("store.save", err)
	}
	return nil
}
