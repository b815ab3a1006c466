package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	// necessary imports to wire up the postgres and sqlite drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewConnection opens a database for the given driver, pings it and brings the
// schema up to date
func NewConnection(driver, databaseURL string) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(databaseURL), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(driver, databaseURL); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the embedded migrations. It uses its own connection
// because closing the migrate instance closes the underlying database.
func RunMigrations(driver, databaseURL string) error {
	migrateDB, err := sql.Open(driver, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration database: %w", err)
	}
	defer migrateDB.Close()

	var dbDriver database.Driver
	switch driver {
	case DriverSQLite:
		dbDriver, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
