package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// CreateUser persists a user row for the authentication collaborator, which
// owns hashing and session policy. A duplicate email surfaces as ErrConflict
// for the caller to translate into a signup message.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	now := db.now()
	u := &models.User{
		ID:           identity.NewID().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
	err := db.withTx(ctx, []string{TableUsers}, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.PasswordHash, now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("inserting user: %w", mapErr(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserByEmail retrieves a user by email.
func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	var created int64
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", mapErr(err))
	}
	u.CreatedAt = timeFromUnix(created)
	return &u, nil
}

// DeleteUser removes a user row.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableUsers}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting user %s: %w", id, mapErr(err))
		}
		return nil
	})
}
