// Package migrations versions the constraints GORM's AutoMigrate cannot
// express portably, using golang-migrate over embedded SQL files
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// MigrationsTable records the applied schema version
const MigrationsTable = "schema_migrations"

// Migrator applies the embedded migrations to one database
type Migrator struct {
	migrate *migrate.Migrate
	source  source.Driver
	release func() error
	logger  *zap.Logger
}

// New creates a migrator for db. driver is the configured database driver,
// "sqlite" or "postgres".
func New(db *sql.DB, driver string, logger *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	var (
		target  database.Driver
		release func() error
	)
	switch driver {
	case "sqlite":
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: MigrationsTable})
	case "postgres":
		// A dedicated connection keeps the advisory lock off the shared pool
		var conn *sql.Conn
		conn, err = db.Conn(context.Background())
		if err == nil {
			var pg *postgres.Postgres
			pg, err = postgres.WithConnection(context.Background(), conn, &postgres.Config{MigrationsTable: MigrationsTable})
			if err != nil {
				_ = conn.Close()
			} else {
				target, release = pg, pg.Close
			}
		}
	default:
		err = fmt.Errorf("no migration driver for %q", driver)
	}
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = src.Close()
		if release != nil {
			_ = release()
		}
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, source: src, release: release, logger: logger.Named("migrations")}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	start := time.Now()

	from, _, err := m.Version()
	if err != nil {
		return err
	}

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Debug("No migrations to run", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, _ := m.Version()
	m.logger.Info("Migrations completed",
		zap.Uint("from_version", from),
		zap.Uint("to_version", to),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Down rolls back one migration
func (m *Migrator) Down() error {
	if err := m.migrate.Steps(-1); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	m.logger.Info("Migration rolled back")
	return nil
}

// Version returns the applied version; zero means none
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the embedded source and any dedicated connection. The
// *sql.DB belongs to the caller and stays open, so migrate's own Close is
// not used.
func (m *Migrator) Close() error {
	err := m.source.Close()
	if m.release != nil {
		if relErr := m.release(); err == nil {
			err = relErr
		}
	}
	return err
}

// Up applies every pending migration to db and releases the migrator
func Up(db *sql.DB, driver string, logger *zap.Logger) error {
	m, err := New(db, driver, logger)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
