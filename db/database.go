package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Database manages the history store lifecycle: directory creation,
// migration, connection, and shutdown.
type Database struct {
	conn *sql.DB
	path string
}

// Open prepares the history database at path: parent directories are
// created, pending migrations applied, and a WAL-mode connection returned.
func Open(path, migrationsPath string) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}
	if migrationsPath == "" {
		migrationsPath = DefaultMigrationsPath
	}
	if err := MigrateUp(path, migrationsPath); err != nil {
		return nil, err
	}

	conn, err := NewConnectionWithDefaults(path)
	if err != nil {
		return nil, err
	}
	return &Database{conn: conn, path: path}, nil
}

// DB exposes the underlying connection for the repository.
func (d *Database) DB() *sql.DB {
	return d.conn
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Close shuts down the connection. Safe to call more than once.
func (d *Database) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
