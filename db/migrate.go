package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
)

// DefaultMigrationsPath locates the bundled migrations relative to the
// working directory, in golang-migrate's file:// URL format.
const DefaultMigrationsPath = "file://db/migrations"

// MigrateUp applies all pending migrations to the database at dbPath. A
// database with nothing pending is not an error. The migration run manages
// its own connection; it never shares one with the repository.
func MigrateUp(dbPath, migrationsPath string) error {
	conn, err := NewConnectionWithDefaults(dbPath)
	if err != nil {
		return fmt.Errorf("opening database for migration: %w", err)
	}

	driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "main", driver)
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	// migrator.Close also closes the underlying connection.
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
