package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

const workoutColumns = `id, name, status, source_template_id, started_at, completed_at, notes, created_at, updated_at`

// workoutName buckets the start time into a default session name.
func workoutName(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Morning Workout"
	case h < 18:
		return "Afternoon Workout"
	default:
		return "Evening Workout"
	}
}

// StartOrResumePendingWorkout returns the id of the current pending workout,
// creating one if none exists. resumed reports whether an existing workout
// was returned. Safe under concurrent callers: the partial unique index lets
// only one insert survive, and the loser retries the read.
func (db *DB) StartOrResumePendingWorkout(ctx context.Context) (id string, resumed bool, err error) {
	return db.startPending(ctx, func(tx *sql.Tx, workoutID string, now time.Time) error {
		_, err := tx.Exec(
			`INSERT INTO workouts (id, name, status, started_at, created_at, updated_at)
			 VALUES (?, ?, 'pending', ?, ?, ?)`,
			workoutID, workoutName(now), now.Unix(), now.Unix(), now.Unix(),
		)
		return err
	}, []string{TableWorkouts})
}

// StartPendingWorkoutFromTemplate behaves like StartOrResumePendingWorkout,
// and when a new workout is created it copies every template exercise in
// sort order, each with its planned number of blank sets. A negative planned
// count is clamped to zero sets.
func (db *DB) StartPendingWorkoutFromTemplate(ctx context.Context, templateID string) (id string, resumed bool, err error) {
	return db.startPending(ctx, func(tx *sql.Tx, workoutID string, now time.Time) error {
		var name string
		if err := tx.QueryRow(`SELECT name FROM templates WHERE id = ?`, templateID).Scan(&name); err != nil {
			return fmt.Errorf("querying template %s: %w", templateID, mapErr(err))
		}
		_, err := tx.Exec(
			`INSERT INTO workouts (id, name, status, source_template_id, started_at, created_at, updated_at)
			 VALUES (?, ?, 'pending', ?, ?, ?, ?)`,
			workoutID, name, templateID, now.Unix(), now.Unix(), now.Unix(),
		)
		if err != nil {
			return err
		}

		rows, err := tx.Query(
			`SELECT exercise_id, planned_set_count FROM template_exercises
			 WHERE template_id = ? ORDER BY sort_order ASC`, templateID)
		if err != nil {
			return fmt.Errorf("querying template exercises: %w", err)
		}
		type slot struct {
			exerciseID string
			planned    int
		}
		var slots []slot
		for rows.Next() {
			var s slot
			if err := rows.Scan(&s.exerciseID, &s.planned); err != nil {
				rows.Close()
				return fmt.Errorf("scanning template exercise: %w", err)
			}
			slots = append(slots, s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i, s := range slots {
			weID := identity.NewID().String()
			_, err := tx.Exec(
				`INSERT INTO workout_exercises (id, workout_id, exercise_id, sort_order, next_set_order)
				 VALUES (?, ?, ?, ?, ?)`,
				weID, workoutID, s.exerciseID, i, max(s.planned, 0),
			)
			if err != nil {
				return fmt.Errorf("copying template exercise: %w", mapErr(err))
			}
			for setOrder := 0; setOrder < s.planned; setOrder++ {
				_, err := tx.Exec(
					`INSERT INTO workout_sets (id, workout_exercise_id, sort_order) VALUES (?, ?, ?)`,
					identity.NewID().String(), weID, setOrder,
				)
				if err != nil {
					return fmt.Errorf("creating blank set: %w", err)
				}
			}
		}
		_, err = tx.Exec(
			`UPDATE workouts SET next_exercise_order = ? WHERE id = ?`,
			len(slots), workoutID,
		)
		return err
	}, []string{TableWorkouts, TableWorkoutExercises, TableWorkoutSets})
}

// startPending implements the idempotent-pending contract shared by both
// start operations: resume if a pending workout exists, otherwise run the
// given insert, retrying the read when a concurrent insert won the race.
func (db *DB) startPending(ctx context.Context, insert func(tx *sql.Tx, workoutID string, now time.Time) error, tables []string) (string, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var existing string
		err := db.sql.QueryRowContext(ctx,
			`SELECT id FROM workouts WHERE status = 'pending' LIMIT 1`,
		).Scan(&existing)
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", false, fmt.Errorf("querying pending workout: %w", err)
		}

		workoutID := identity.NewID().String()
		err = db.withTx(ctx, tables, func(tx *sql.Tx) error {
			return insert(tx, workoutID, db.now())
		})
		if err == nil {
			return workoutID, false, nil
		}
		if isConflict(err) {
			// Lost the race against another start; read the winner.
			continue
		}
		return "", false, err
	}
	return "", false, fmt.Errorf("starting workout: %w", ErrConflict)
}

// CompleteWorkout marks a pending workout completed. Completing a workout
// that is missing or already completed is a no-op, so double taps and
// re-delivered UI events are harmless.
func (db *DB) CompleteWorkout(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableWorkouts}, func(tx *sql.Tx) error {
		now := db.now().Unix()
		_, err := tx.Exec(
			`UPDATE workouts SET status = 'completed', completed_at = ?, updated_at = ?
			 WHERE id = ? AND status = 'pending'`,
			now, now, id,
		)
		if err != nil {
			return fmt.Errorf("completing workout %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// DiscardPendingWorkout hard-deletes a workout only while it is still
// pending; exercises and sets cascade.
func (db *DB) DiscardPendingWorkout(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableWorkouts, TableWorkoutExercises, TableWorkoutSets}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM workouts WHERE id = ? AND status = 'pending'`, id); err != nil {
			return fmt.Errorf("discarding workout %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// DeleteWorkout hard-deletes a workout regardless of status.
func (db *DB) DeleteWorkout(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableWorkouts, TableWorkoutExercises, TableWorkoutSets}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM workouts WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting workout %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// PendingWorkout returns the current pending workout, or nil if none exists.
func (db *DB) PendingWorkout(ctx context.Context) (*models.Workout, error) {
	w, err := db.scanWorkout(db.sql.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE status = 'pending' LIMIT 1`))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return w, err
}

// GetWorkout retrieves a workout by id.
func (db *DB) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return db.scanWorkout(db.sql.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id))
}

// ListWorkouts returns the most recent workouts, newest started first.
func (db *DB) ListWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.sql.QueryContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		w, err := db.scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}

// WorkoutExercises returns a workout's exercises in sort order.
func (db *DB) WorkoutExercises(ctx context.Context, workoutID string) ([]models.WorkoutExercise, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.exercise_id, e.name, we.sort_order
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ?
		ORDER BY we.sort_order ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutExercise
	for rows.Next() {
		var we models.WorkoutExercise
		if err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseName, &we.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		result = append(result, we)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var status string
	var sourceTemplate, notes sql.NullString
	var started, created, updated int64
	var completed sql.NullInt64

	err := row.Scan(&w.ID, &w.Name, &status, &sourceTemplate, &started, &completed, &notes, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("scanning workout: %w", mapErr(err))
	}
	w.Status = models.WorkoutStatus(status)
	if sourceTemplate.Valid {
		w.SourceTemplateID = &sourceTemplate.String
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	w.StartedAt = timeFromUnix(started)
	if completed.Valid {
		t := timeFromUnix(completed.Int64)
		w.CompletedAt = &t
	}
	w.CreatedAt = timeFromUnix(created)
	w.UpdatedAt = timeFromUnix(updated)
	return &w, nil
}
