package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// InsertExerciseIfAbsent inserts an exercise under its canonical name-derived
// id. Re-inserting the same name (in any case/whitespace variant) is a no-op,
// which is what makes seeding and import safe to repeat. Returns the
// canonical id and whether a row was actually created.
func (db *DB) InsertExerciseIfAbsent(ctx context.Context, name string) (string, bool, error) {
	var id string
	var inserted bool
	err := db.withTx(ctx, []string{TableExercises}, func(tx *sql.Tx) error {
		var err error
		id, inserted, err = insertExerciseIfAbsentTx(tx, name)
		return err
	})
	return id, inserted, err
}

// insertExerciseIfAbsentTx is the transaction-scoped form, shared with the
// import pipeline which runs many of these inside one transaction.
func insertExerciseIfAbsentTx(tx *sql.Tx, name string) (string, bool, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false, fmt.Errorf("exercise name is empty")
	}
	id := identity.ExerciseID(trimmed).String()
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO exercises (id, name) VALUES (?, ?)`,
		id, trimmed,
	)
	if err != nil {
		return "", false, fmt.Errorf("inserting exercise %q: %w", trimmed, mapErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", false, err
	}
	return id, n > 0, nil
}

// GetExercise retrieves an exercise by id.
func (db *DB) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	var e models.Exercise
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, name FROM exercises WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name)
	if err != nil {
		return nil, fmt.Errorf("querying exercise %s: %w", id, mapErr(err))
	}
	return &e, nil
}

// ListExercises returns all exercises ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name FROM exercises ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// RenameExercise updates an exercise's display name. The id stays stable:
// history and templates keep pointing at the same row. A duplicate name
// surfaces as ErrConflict.
func (db *DB) RenameExercise(ctx context.Context, id, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("exercise name is empty")
	}
	return db.withTx(ctx, []string{TableExercises}, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE exercises SET name = ? WHERE id = ?`, trimmed, id)
		if err != nil {
			return fmt.Errorf("renaming exercise %s: %w", id, mapErr(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("renaming exercise %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// DeleteExercise removes an exercise. If any template or workout still
// references it the delete is rejected with ErrRestricted; history must not
// silently lose its subject.
func (db *DB) DeleteExercise(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableExercises}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM exercises WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting exercise %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// UsageCounts returns, per exercise id, the number of sets performed across
// completed workouts. The search engine blends these frequencies into its
// ranking.
func (db *DB) UsageCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT we.exercise_id, COUNT(ws.id)
		FROM workout_sets ws
		JOIN workout_exercises we ON we.id = ws.workout_exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.status = 'completed'
		GROUP BY we.exercise_id`)
	if err != nil {
		return nil, fmt.Errorf("querying usage counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning usage count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
