package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (and creates if needed) the SQLite database at path and
// ensures required tables exist.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Basic health check + apply a few safe pragmas.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign_keys: %w", err)
	}
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if err := BootstrapSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// BootstrapSQLite creates the read-model tables and indexes if missing.
func BootstrapSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS containers (
  id          TEXT PRIMARY KEY,
  alias       TEXT,
  group_id    TEXT NOT NULL,
  artifact_id TEXT NOT NULL,
  version     TEXT NOT NULL,
  status      TEXT NOT NULL,
  updated_at  TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS case_definitions (
  id           TEXT NOT NULL,
  container_id TEXT NOT NULL,
  name         TEXT NOT NULL,
  version      TEXT,
  PRIMARY KEY (id, container_id)
);`,
		`CREATE TABLE IF NOT EXISTS case_instances (
  case_id       TEXT PRIMARY KEY,
  description   TEXT,
  owner         TEXT NOT NULL,
  status        INTEGER NOT NULL,
  definition_id TEXT NOT NULL,
  container_id  TEXT NOT NULL,
  started_at    TEXT NOT NULL,
  completed_at  TEXT
);`,
		`CREATE TABLE IF NOT EXISTS process_instances (
  id           INTEGER PRIMARY KEY,
  process_id   TEXT NOT NULL,
  process_name TEXT NOT NULL,
  state        INTEGER NOT NULL,
  container_id TEXT NOT NULL,
  initiator    TEXT,
  started_at   TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS job_requests (
  id             INTEGER PRIMARY KEY,
  status         TEXT NOT NULL,
  command        TEXT NOT NULL,
  business_key   TEXT,
  retries        INTEGER NOT NULL DEFAULT 0,
  container_id   TEXT,
  scheduled_date TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS case_instances_status_idx ON case_instances(status, started_at);`,
		`CREATE INDEX IF NOT EXISTS case_instances_owner_status_idx ON case_instances(owner, status);`,
		`CREATE INDEX IF NOT EXISTS process_instances_container_idx ON process_instances(container_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap sqlite: %w", err)
		}
	}
	return nil
}
