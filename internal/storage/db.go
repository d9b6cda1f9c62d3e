// Package storage is the transactional persistence layer: a single sqlite
// file owned by one logical writer, with domain operations that each run in
// their own transaction.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB wraps the sqlite handle and provides repository methods.
type DB struct {
	sql      *sql.DB
	log      *slog.Logger
	notifier *Notifier

	// now is swapped in tests for deterministic timestamps and
	// time-of-day workout names.
	now func() time.Time
}

// Open opens (or creates) the store file, configures it, and applies all
// pending migrations. A migration failure is fatal: no partial schema is
// acceptable, so the handle is closed and the error returned.
func Open(path string, log *slog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// One connection: transactions serialize against the file instead of
	// failing with SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		sql:      db,
		log:      log,
		notifier: NewNotifier(),
		now:      time.Now,
	}, nil
}

// OpenMemory opens an in-memory store, used by tests.
func OpenMemory(log *slog.Logger) (*DB, error) {
	return Open(":memory:", log)
}

// Close closes the store file.
func (db *DB) Close() error {
	return db.sql.Close()
}

// Notifier exposes the commit notification channel registry for the
// reactive query layer.
func (db *DB) Notifier() *Notifier {
	return db.notifier
}

// runMigrations applies all embedded migrations newer than the store's
// recorded version, in order. Re-running on an up-to-date store is a no-op.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// withTx runs fn in a single transaction and, after a successful commit,
// publishes the touched tables to the notifier.
func (db *DB) withTx(ctx context.Context, tables []string, fn func(tx *sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	db.notifier.Publish(tables...)
	return nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeFromUnix(s int64) time.Time {
	return time.Unix(s, 0)
}
