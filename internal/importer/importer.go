// Package importer reconstructs structured workout history from a flat CSV
// export (one row per set, workout metadata duplicated onto every row) and
// materializes it through the store in one atomic transaction.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/storage"
)

// The export's fixed header. Any deviation aborts the import.
var expectedHeader = []string{
	"Date", "Workout Name", "Duration", "Exercise Name", "Set Order",
	"Weight", "Reps", "Distance", "Seconds", "Notes", "Workout Notes", "RPE",
}

const columnCount = 12

// Column indices into a data row.
const (
	colDate = iota
	colWorkoutName
	colDuration
	colExerciseName
	colSetOrder
	colWeight
	colReps
	colDistance
	colSeconds
	colNotes
	colWorkoutNotes
	colRPE
)

// Set Order marker values.
const (
	markerRestTimer = "Rest Timer"
	markerWarmUp    = "W"
	markerFailure   = "F"
)

// Importer drives the import pipeline against a store.
type Importer struct {
	db  *storage.DB
	log *slog.Logger
}

func New(db *storage.DB, log *slog.Logger) *Importer {
	return &Importer{db: db, log: log}
}

// ImportFile imports the export at path. The file handle is held only for
// the duration of the read.
func (imp *Importer) ImportFile(ctx context.Context, path string) (storage.ImportCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return storage.ImportCounts{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return imp.Import(ctx, f)
}

// Import parses, groups, and materializes the export read from r. Parse or
// validation failures abort with zero side effects; the store transaction
// makes the write side all-or-nothing as well.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (storage.ImportCounts, error) {
	workouts, err := Parse(r)
	if err != nil {
		return storage.ImportCounts{}, err
	}

	counts, err := imp.db.ImportWorkouts(ctx, workouts)
	if err != nil {
		return storage.ImportCounts{}, fmt.Errorf("materializing import: %w", err)
	}
	if counts.Skipped {
		imp.log.Info("import skipped, already performed")
		return counts, nil
	}
	imp.log.Info("import complete",
		"workouts", counts.Workouts,
		"workout_exercises", counts.WorkoutExercises,
		"sets", counts.Sets,
		"exercises_seen", counts.ExercisesSeen,
	)
	return counts, nil
}

// Parse tokenizes the export and groups its rows into workouts. Workouts are
// keyed by (date string, workout name) because the format carries no workout
// id; exercises group by first appearance within a workout.
func Parse(r io.Reader) ([]models.ImportedWorkout, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per row for a useful error
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if !headerMatches(header) {
		return nil, &HeaderMismatchError{Got: header}
	}

	g := newGrouper()
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", line, err)
		}
		if len(record) != columnCount {
			return nil, &MalformedRowError{Line: line, Fields: len(record), Row: preview(record)}
		}
		if err := g.addRow(line, record); err != nil {
			return nil, err
		}
	}
	return g.workouts(), nil
}

func headerMatches(header []string) bool {
	if len(header) != columnCount {
		return false
	}
	for i, want := range expectedHeader {
		if trim(header[i]) != want {
			return false
		}
	}
	return true
}
