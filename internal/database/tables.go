package database

import (
	"database/sql"
	"fmt"
)

// initProgramTable initializes the single-row program control table.
func initProgramTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS program (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        running INTEGER NOT NULL DEFAULT 0,
        pid INTEGER NOT NULL DEFAULT 0,
        host TEXT,
        started_at TIMESTAMP,
        last_heartbeat TIMESTAMP
    );
    INSERT OR IGNORE INTO program (id, running, pid) VALUES (1, 0, 0);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create program table: %w", err)
	}
	return nil
}

// initRunsTable initializes the per-run history table.
func initRunsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        list_name TEXT NOT NULL,
        state TEXT NOT NULL,
        total INTEGER NOT NULL DEFAULT 0,
        successful INTEGER NOT NULL DEFAULT 0,
        failed INTEGER NOT NULL DEFAULT 0,
        skipped INTEGER NOT NULL DEFAULT 0,
        elapsed_ms INTEGER NOT NULL DEFAULT 0,
        started_at TIMESTAMP NOT NULL,
        finished_at TIMESTAMP NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
    CREATE INDEX IF NOT EXISTS idx_runs_list_name ON runs(list_name);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// initRunURLsTable initializes the per-URL outcome table.
func initRunURLsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS run_urls (
        run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
        position INTEGER NOT NULL,
        url TEXT NOT NULL,
        outcome TEXT NOT NULL,
        exit_code INTEGER NOT NULL DEFAULT 0,
        error TEXT,
        PRIMARY KEY (run_id, position)
    );
    CREATE INDEX IF NOT EXISTS idx_run_urls_url ON run_urls(url);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create run_urls table: %w", err)
	}
	return nil
}

// initSummaryTable initializes the single-row cross-run summary.
func initSummaryTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS summary (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        total_runs INTEGER NOT NULL DEFAULT 0,
        total_successful INTEGER NOT NULL DEFAULT 0,
        total_failed INTEGER NOT NULL DEFAULT 0,
        total_skipped INTEGER NOT NULL DEFAULT 0,
        last_run_at TIMESTAMP,
        last_list TEXT
    );
    INSERT OR IGNORE INTO summary (id) VALUES (1);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create summary table: %w", err)
	}
	return nil
}
