// Package dbmigrate applies the embedded schema migrations with golang-migrate.
package dbmigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"venuebook/migrations"
)

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back every applied migration.
func Down(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, "down", func(m *migrate.Migrate) error { return m.Down() })
}

// Version reports the current schema version and whether the last migration
// failed halfway.
func Version(ctx context.Context, db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(ctx, db)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

func run(ctx context.Context, db *sql.DB, direction string, step func(*migrate.Migrate) error) error {
	m, err := newMigrate(ctx, db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// newMigrate borrows a single connection from db. Closing the returned
// instance releases that connection and leaves the pool open.
func newMigrate(ctx context.Context, db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}
