package importer

import (
	"strings"
	"time"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// dateLayout is the export's timestamp format, interpreted in the local
// timezone because the export carries no offset.
const dateLayout = "2006-01-02 15:04:05"

type workoutKey struct {
	date string
	name string
}

// grouper folds one row at a time into ordered workouts. First appearance
// fixes workout and exercise order; later rows for the same key only append
// sets or fill in still-missing workout notes.
type grouper struct {
	order []*workoutBuilder
	byKey map[workoutKey]*workoutBuilder
}

type workoutBuilder struct {
	workout models.ImportedWorkout
	exIndex map[string]int // normalized exercise name -> position
}

func newGrouper() *grouper {
	return &grouper{byKey: make(map[workoutKey]*workoutBuilder)}
}

func (g *grouper) workouts() []models.ImportedWorkout {
	result := make([]models.ImportedWorkout, len(g.order))
	for i, b := range g.order {
		result[i] = b.workout
	}
	return result
}

func (g *grouper) addRow(line int, record []string) error {
	key := workoutKey{date: trim(record[colDate]), name: trim(record[colWorkoutName])}

	b, ok := g.byKey[key]
	if !ok {
		startedAt, err := time.ParseInLocation(dateLayout, key.date, time.Local)
		if err != nil {
			return &UnparseableDateError{Line: line, Value: key.date}
		}
		completedAt := startedAt
		if secs := parseDurationTokens(record[colDuration]); secs > 0 {
			completedAt = startedAt.Add(time.Duration(secs) * time.Second)
		}
		b = &workoutBuilder{
			workout: models.ImportedWorkout{
				Name:        key.name,
				StartedAt:   startedAt,
				CompletedAt: completedAt,
			},
			exIndex: make(map[string]int),
		}
		g.order = append(g.order, b)
		g.byKey[key] = b
	}

	// Workout notes are taken from the first row that supplies them and
	// never overwritten after that.
	if b.workout.Notes == nil {
		if notes := trim(record[colWorkoutNotes]); notes != "" {
			b.workout.Notes = &notes
		}
	}

	exerciseName := trim(record[colExerciseName])
	if exerciseName == "" {
		return nil // best-effort tolerance, mirrors the source behavior
	}

	setOrder := trim(record[colSetOrder])
	if setOrder == markerRestTimer {
		b.attachRestTimer(exerciseName, record)
		return nil
	}

	b.addSet(exerciseName, setOrder, record)
	return nil
}

// attachRestTimer puts a positive rest duration on the most recently added
// set for this exercise. With no preceding set the marker is dropped.
func (b *workoutBuilder) attachRestTimer(exerciseName string, record []string) {
	secs := parseLenientSeconds(record[colSeconds])
	if secs <= 0 {
		return
	}
	idx, ok := b.exIndex[identity.NormalizeName(exerciseName)]
	if !ok {
		return
	}
	sets := b.workout.Exercises[idx].Sets
	if len(sets) == 0 {
		return
	}
	sets[len(sets)-1].RestTimerSeconds = &secs
}

func (b *workoutBuilder) addSet(exerciseName, setOrder string, record []string) {
	norm := identity.NormalizeName(exerciseName)
	idx, ok := b.exIndex[norm]
	if !ok {
		idx = len(b.workout.Exercises)
		b.workout.Exercises = append(b.workout.Exercises, models.ImportedExercise{Name: exerciseName})
		b.exIndex[norm] = idx
	}

	set := models.ImportedSet{
		Weight:   parseFloatPtr(record[colWeight]),
		Reps:     parseRepsPtr(record[colReps]),
		Distance: parseFloatPtr(record[colDistance]),
		Seconds:  parseIntPtr(record[colSeconds]),
		RPE:      parseFloatPtr(record[colRPE]),
		IsWarmUp: strings.EqualFold(setOrder, markerWarmUp),
	}
	if strings.EqualFold(setOrder, markerFailure) {
		zero := 0
		set.RIR = &zero
	}
	if notes := trim(record[colNotes]); notes != "" {
		set.Notes = &notes
	}

	b.workout.Exercises[idx].Sets = append(b.workout.Exercises[idx].Sets, set)
}
