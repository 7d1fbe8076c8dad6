package sqlitestore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// kvSchema holds the numbered up/down scripts for the kv table.
//
//go:embed migrations/*.sql
var kvSchema embed.FS

// RunMigrations brings db up to the latest kv schema. A database that is
// already current is left alone, so every Open can call it.
func RunMigrations(db *sql.DB) error {
	src, err := iofs.New(kvSchema, "migrations")
	if err != nil {
		return fmt.Errorf("kv schema source: %w", err)
	}
	target, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("kv schema target: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", target)
	if err != nil {
		return fmt.Errorf("kv schema migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate kv schema: %w", err)
	}
	return nil
}
