package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Flag reads a persisted app flag. ok is false when the flag was never set.
func (db *DB) Flag(ctx context.Context, key string) (value string, ok bool, err error) {
	err = db.sql.QueryRowContext(ctx,
		`SELECT value FROM app_flags WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying flag %q: %w", key, err)
	}
	return value, true, nil
}

// SetFlag writes a persisted app flag, replacing any previous value.
func (db *DB) SetFlag(ctx context.Context, key, value string) error {
	return db.withTx(ctx, []string{TableAppFlags}, func(tx *sql.Tx) error {
		return setFlagTx(tx, key, value)
	})
}

func setFlagTx(tx *sql.Tx, key, value string) error {
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO app_flags (key, value) VALUES (?, ?)`, key, value,
	); err != nil {
		return fmt.Errorf("setting flag %q: %w", key, err)
	}
	return nil
}

func flagTx(tx *sql.Tx, key string) (string, bool, error) {
	var value string
	err := tx.QueryRow(`SELECT value FROM app_flags WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying flag %q: %w", key, err)
	}
	return value, true, nil
}
