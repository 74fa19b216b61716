package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateIface is the subset of *migrate.Migrate the service drives.
type migrateIface interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// Migrator applies the embedded schema migrations.
type Migrator struct {
	m      migrateIface
	logger *slog.Logger
}

// NewMigrator builds a migrator on sqlDB. Closing the migrator closes sqlDB.
func NewMigrator(sqlDB *sql.DB, logger *slog.Logger) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "create migration source")
	}

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		_ = source.Close()

		return nil, errors.Wrap(err, "create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = source.Close()

		return nil, errors.Wrap(err, "initialize migrator")
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}

	version, dirty, err := m.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "read migration version")
	}
	if dirty {
		return errors.Errorf("schema version %d is dirty", version)
	}

	if m.logger != nil {
		m.logger.InfoContext(ctx, "Database schema up to date", slog.Uint64("version", uint64(version)))
	}

	return nil
}

// Close releases the migration source and database handle.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return errors.Wrap(srcErr, "close migration source")
	}
	if dbErr != nil {
		return errors.Wrap(dbErr, "close migration database")
	}

	return nil
}
