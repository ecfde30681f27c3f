// Package db stores conversion history in SQLite: which files were
// converted, their dimensions, checksums, and outcomes.
package db

import (
	"database/sql"
	"fmt"
	"time"

	// Pure-Go SQLite driver, no CGO required.
	_ "modernc.org/sqlite"
)

// ConnectionConfig holds SQLite connection settings.
type ConnectionConfig struct {
	Path string
	// BusyTimeoutMS is how long to wait for locks.
	BusyTimeoutMS int
	// MaxOpenConns limits concurrent connections. SQLite behaves best
	// with a single writer.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConnectionConfig returns settings tuned for concurrent reads with
// a single writer in WAL mode.
func DefaultConnectionConfig(path string) ConnectionConfig {
	return ConnectionConfig{
		Path:          path,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	}
}

// NewConnection opens a SQLite database with WAL mode and foreign keys
// enabled.
func NewConnection(config ConnectionConfig) (*sql.DB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	conn, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", config.BusyTimeoutMS),
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	conn.SetMaxOpenConns(config.MaxOpenConns)
	conn.SetMaxIdleConns(config.MaxIdleConns)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	return conn, nil
}

// NewConnectionWithDefaults opens a SQLite database at path with default
// settings.
func NewConnectionWithDefaults(path string) (*sql.DB, error) {
	return NewConnection(DefaultConnectionConfig(path))
}
