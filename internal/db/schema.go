package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// note: as per SQLites's manual suggestions, we do not use 'AUTOINCREMENT' on
// the 'INTEGER PRIMARY KEY' columns.
var schema_stmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`CREATE TABLE IF NOT EXISTS book_loads (
		id INTEGER PRIMARY KEY,
		load_id TEXT NOT NULL,
		loaded_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		path TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		records INTEGER NOT NULL DEFAULT 0,
		trailing_bytes INTEGER NOT NULL DEFAULT 0,
		sorted INTEGER NOT NULL DEFAULT 0,
		compressed INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		UNIQUE(load_id)
	);`,
	`CREATE TABLE IF NOT EXISTS lookups (
		zobrist_key INTEGER PRIMARY KEY,
		hits INTEGER NOT NULL DEFAULT 0,
		last_min_weight INTEGER NOT NULL DEFAULT 0,
		last_matches INTEGER NOT NULL DEFAULT 0,
		last_queried_at TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_book_loads_loaded_at ON book_loads(loaded_at);`,
	`CREATE INDEX IF NOT EXISTS idx_lookups_hits ON lookups(hits);`,
}

type Store struct {
	db *sqlx.DB
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// keep it predictable; this is a single-instance service.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schema_stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// sqlite integers are signed; keys are stored bit-for-bit.
func keyToDB(key uint64) int64 {
	return int64(key)
}

func keyFromDB(v int64) uint64 {
	return uint64(v)
}
