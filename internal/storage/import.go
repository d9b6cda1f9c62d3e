package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// FlagImportDone marks that the one-time historical import has run. The
// import pipeline checks it rather than hashing file contents: a second
// import attempt is skipped wholesale.
const FlagImportDone = "history_import_done"

// ImportCounts reports what one import materialized.
type ImportCounts struct {
	Workouts         int
	WorkoutExercises int
	Sets             int
	// ExercisesSeen is the number of distinct exercise names in the file,
	// whether inserted or already present.
	ExercisesSeen int
	// Skipped is true when the persisted import flag was already set and
	// nothing was written.
	Skipped bool
}

// ImportWorkouts materializes grouped imported workouts in a single
// transaction: either the whole file lands or none of it does. Exercise
// names resolve to canonical ids and are inserted only if absent, so the
// same data can never duplicate exercise rows.
func (db *DB) ImportWorkouts(ctx context.Context, workouts []models.ImportedWorkout) (ImportCounts, error) {
	var counts ImportCounts
	seen := make(map[string]struct{})

	err := db.withTx(ctx, []string{
		TableWorkouts, TableWorkoutExercises, TableWorkoutSets, TableExercises, TableAppFlags,
	}, func(tx *sql.Tx) error {
		if _, done, err := flagTx(tx, FlagImportDone); err != nil {
			return err
		} else if done {
			counts.Skipped = true
			return nil
		}

		now := db.now().Unix()
		for _, iw := range workouts {
			workoutID := identity.NewID().String()
			var notes any
			if iw.Notes != nil {
				notes = *iw.Notes
			}
			_, err := tx.Exec(
				`INSERT INTO workouts (id, name, status, started_at, completed_at, notes, created_at, updated_at, next_exercise_order)
				 VALUES (?, ?, 'completed', ?, ?, ?, ?, ?, ?)`,
				workoutID, iw.Name, iw.StartedAt.Unix(), iw.CompletedAt.Unix(), notes, now, now, len(iw.Exercises),
			)
			if err != nil {
				return fmt.Errorf("inserting imported workout %q: %w", iw.Name, mapErr(err))
			}
			counts.Workouts++

			for order, ie := range iw.Exercises {
				exerciseID, _, err := insertExerciseIfAbsentTx(tx, ie.Name)
				if err != nil {
					return err
				}
				seen[exerciseID] = struct{}{}

				weID := identity.NewID().String()
				_, err = tx.Exec(
					`INSERT INTO workout_exercises (id, workout_id, exercise_id, sort_order, next_set_order)
					 VALUES (?, ?, ?, ?, ?)`,
					weID, workoutID, exerciseID, order, len(ie.Sets),
				)
				if err != nil {
					return fmt.Errorf("inserting imported workout exercise %q: %w", ie.Name, mapErr(err))
				}
				counts.WorkoutExercises++

				for setOrder, is := range ie.Sets {
					_, err := tx.Exec(
						`INSERT INTO workout_sets
						 (id, workout_exercise_id, sort_order, weight, reps, distance, seconds, notes, rpe, rir, is_warm_up, rest_timer_seconds)
						 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
						identity.NewID().String(), weID, setOrder,
						is.Weight, is.Reps, is.Distance, is.Seconds, is.Notes,
						is.RPE, is.RIR, is.IsWarmUp, is.RestTimerSeconds,
					)
					if err != nil {
						return fmt.Errorf("inserting imported set: %w", mapErr(err))
					}
					counts.Sets++
				}
			}
		}

		return setFlagTx(tx, FlagImportDone, "1")
	})
	if err != nil {
		return ImportCounts{}, err
	}
	counts.ExercisesSeen = len(seen)
	if counts.Skipped {
		counts = ImportCounts{Skipped: true}
	}
	return counts, nil
}
