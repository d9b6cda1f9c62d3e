package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// AddWorkoutExercise appends an exercise to a workout at the next sort
// order. Orders are never reused: deleting the last exercise and adding a
// new one yields a strictly higher order.
func (db *DB) AddWorkoutExercise(ctx context.Context, workoutID, exerciseID string) (*models.WorkoutExercise, error) {
	we := &models.WorkoutExercise{
		ID:         identity.NewID().String(),
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
	}
	err := db.withTx(ctx, []string{TableWorkoutExercises}, func(tx *sql.Tx) error {
		if err := tx.QueryRow(
			`SELECT next_exercise_order FROM workouts WHERE id = ?`, workoutID,
		).Scan(&we.SortOrder); err != nil {
			return fmt.Errorf("reading exercise order for workout %s: %w", workoutID, mapErr(err))
		}
		_, err := tx.Exec(
			`INSERT INTO workout_exercises (id, workout_id, exercise_id, sort_order) VALUES (?, ?, ?, ?)`,
			we.ID, we.WorkoutID, we.ExerciseID, we.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("inserting workout exercise: %w", mapErr(err))
		}
		_, err = tx.Exec(
			`UPDATE workouts SET next_exercise_order = ? WHERE id = ?`,
			we.SortOrder+1, workoutID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return we, nil
}

// DeleteWorkoutExercise removes an exercise from a workout; its sets
// cascade. Remaining sort orders are left as they are.
func (db *DB) DeleteWorkoutExercise(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableWorkoutExercises, TableWorkoutSets}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM workout_exercises WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting workout exercise %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// AddSet appends a blank set to a workout exercise. All measurement fields
// start empty; the user fills them in while training.
func (db *DB) AddSet(ctx context.Context, workoutExerciseID string) (*models.WorkoutSet, error) {
	s := &models.WorkoutSet{
		ID:                identity.NewID().String(),
		WorkoutExerciseID: workoutExerciseID,
	}
	err := db.withTx(ctx, []string{TableWorkoutSets}, func(tx *sql.Tx) error {
		if err := tx.QueryRow(
			`SELECT next_set_order FROM workout_exercises WHERE id = ?`, workoutExerciseID,
		).Scan(&s.SortOrder); err != nil {
			return fmt.Errorf("reading set order for workout exercise %s: %w", workoutExerciseID, mapErr(err))
		}
		_, err := tx.Exec(
			`INSERT INTO workout_sets (id, workout_exercise_id, sort_order) VALUES (?, ?, ?)`,
			s.ID, s.WorkoutExerciseID, s.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("inserting set: %w", mapErr(err))
		}
		_, err = tx.Exec(
			`UPDATE workout_exercises SET next_set_order = ? WHERE id = ?`,
			s.SortOrder+1, workoutExerciseID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SetUpdate carries the editable fields of a set. Nil means "clear".
type SetUpdate struct {
	Weight           *float64
	Reps             *int
	Distance         *float64
	Seconds          *int
	Notes            *string
	RPE              *float64
	RIR              *int
	IsWarmUp         bool
	RestTimerSeconds *int
}

// UpdateSet overwrites a set's measurement fields.
func (db *DB) UpdateSet(ctx context.Context, id string, u SetUpdate) error {
	return db.withTx(ctx, []string{TableWorkoutSets}, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE workout_sets
			 SET weight = ?, reps = ?, distance = ?, seconds = ?, notes = ?, rpe = ?, rir = ?,
			     is_warm_up = ?, rest_timer_seconds = ?
			 WHERE id = ?`,
			u.Weight, u.Reps, u.Distance, u.Seconds, u.Notes, u.RPE, u.RIR,
			u.IsWarmUp, u.RestTimerSeconds, id,
		)
		if err != nil {
			return fmt.Errorf("updating set %s: %w", id, mapErr(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("updating set %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// DeleteSet removes a set without compacting the remaining sort orders.
func (db *DB) DeleteSet(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableWorkoutSets}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM workout_sets WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting set %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// Sets returns the sets of a workout exercise in sort order.
func (db *DB) Sets(ctx context.Context, workoutExerciseID string) ([]models.WorkoutSet, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT `+setColumns+` FROM workout_sets WHERE workout_exercise_id = ? ORDER BY sort_order ASC`,
		workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()
	return scanSets(rows)
}

// HistoryEntry is one past set of an exercise, with the workout it belongs
// to, as shown in the per-exercise history view.
type HistoryEntry struct {
	Set         models.WorkoutSet
	WorkoutID   string
	WorkoutName string
	CompletedAt time.Time
}

// ExerciseHistory returns every set performed for an exercise across
// completed workouts, newest workout first, sets in performed order.
func (db *DB) ExerciseHistory(ctx context.Context, exerciseID string) ([]HistoryEntry, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT `+setColumnsPrefixed+`, w.id, w.name, w.completed_at
		FROM workout_sets ws
		JOIN workout_exercises we ON we.id = ws.workout_exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE we.exercise_id = ? AND w.status = 'completed'
		ORDER BY w.completed_at DESC, ws.sort_order ASC`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var t setScanTemp
		var warm int
		var completed int64
		err := rows.Scan(&e.Set.ID, &e.Set.WorkoutExerciseID, &e.Set.SortOrder,
			&t.weight, &t.reps, &t.distance, &t.seconds, &t.notes, &t.rpe, &t.rir,
			&warm, &t.restTimer,
			&e.WorkoutID, &e.WorkoutName, &completed)
		if err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		t.apply(&e.Set)
		e.Set.IsWarmUp = warm != 0
		e.CompletedAt = timeFromUnix(completed)
		result = append(result, e)
	}
	return result, rows.Err()
}

const setColumns = `id, workout_exercise_id, sort_order, weight, reps, distance, seconds, notes, rpe, rir, is_warm_up, rest_timer_seconds`

const setColumnsPrefixed = `ws.id, ws.workout_exercise_id, ws.sort_order, ws.weight, ws.reps, ws.distance, ws.seconds, ws.notes, ws.rpe, ws.rir, ws.is_warm_up, ws.rest_timer_seconds`

// setScanTemp collects the nullable set columns during a scan; apply moves
// the valid ones onto the model's pointer fields.
type setScanTemp struct {
	weight    sql.NullFloat64
	reps      sql.NullInt64
	distance  sql.NullFloat64
	seconds   sql.NullInt64
	notes     sql.NullString
	rpe       sql.NullFloat64
	rir       sql.NullInt64
	restTimer sql.NullInt64
}

func scanSets(rows *sql.Rows) ([]models.WorkoutSet, error) {
	var result []models.WorkoutSet
	for rows.Next() {
		s, err := scanSetRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func scanSetRow(row rowScanner) (*models.WorkoutSet, error) {
	var s models.WorkoutSet
	var t setScanTemp
	var warm int
	err := row.Scan(&s.ID, &s.WorkoutExerciseID, &s.SortOrder,
		&t.weight, &t.reps, &t.distance, &t.seconds, &t.notes, &t.rpe, &t.rir,
		&warm, &t.restTimer)
	if err != nil {
		return nil, fmt.Errorf("scanning set: %w", mapErr(err))
	}
	t.apply(&s)
	s.IsWarmUp = warm != 0
	return &s, nil
}

func (t *setScanTemp) apply(s *models.WorkoutSet) {
	if t.weight.Valid {
		s.Weight = &t.weight.Float64
	}
	if t.reps.Valid {
		v := int(t.reps.Int64)
		s.Reps = &v
	}
	if t.distance.Valid {
		s.Distance = &t.distance.Float64
	}
	if t.seconds.Valid {
		v := int(t.seconds.Int64)
		s.Seconds = &v
	}
	if t.notes.Valid {
		s.Notes = &t.notes.String
	}
	if t.rpe.Valid {
		s.RPE = &t.rpe.Float64
	}
	if t.rir.Valid {
		v := int(t.rir.Int64)
		s.RIR = &v
	}
	if t.restTimer.Valid {
		v := int(t.restTimer.Int64)
		s.RestTimerSeconds = &v
	}
}
