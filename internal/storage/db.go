// Package storage is the persistence adapter: a local SQLite database
// holding the serialized catalog and session store as two opaque blob slots,
// plus an audit log of import operations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and provides the slot and log methods.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dbPath, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// LoadSlot reads one state blob. A missing slot is reported via ok=false so
// first-run callers can fall back to defaults instead of treating it as an
// error.
func (d *DB) LoadSlot(ctx context.Context, slot string) (data string, ok bool, err error) {
	err = d.db.QueryRowContext(ctx,
		`SELECT data FROM app_state WHERE slot = ?`, slot).Scan(&data)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading slot %s: %w", slot, err)
	}
	return data, true, nil
}

// SaveSlot upserts one state blob.
func (d *DB) SaveSlot(ctx context.Context, slot, data string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO app_state (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		slot, data)
	if err != nil {
		return fmt.Errorf("saving slot %s: %w", slot, err)
	}
	return nil
}
