// Package database sets up/opens the program state database.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"harvester/internal/domain/consts"
	"harvester/internal/utils/logging"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the state database handle.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the database at path and ensures its tables exist.
func InitDB(path string) (d *Database, err error) {
	if err := os.MkdirAll(filepath.Dir(path), consts.PermsHomeProgDir); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	d = new(Database)
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			if closeErr := d.DB.Close(); closeErr != nil {
				logging.E("Failed to close database after setup error: %v", closeErr)
			}
		}
	}()

	pragmas := []struct{ stmt, desc string }{
		{`PRAGMA foreign_keys = ON;`, "enable foreign keys"},
		// Write-Ahead Logging for concurrent readers
		{`PRAGMA journal_mode = WAL;`, "enable WAL mode"},
		// Milliseconds SQLite waits on a lock
		{`PRAGMA busy_timeout = 5000;`, "set busy_timeout"},
		{`PRAGMA synchronous = NORMAL;`, "set synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := d.DB.Exec(p.stmt); err != nil {
			return nil, fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	for _, initFn := range []func(*sql.Tx) error{
		initProgramTable,
		initRunsTable,
		initRunURLsTable,
		initSummaryTable,
	} {
		if err := initFn(tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
