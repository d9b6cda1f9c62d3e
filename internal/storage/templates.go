package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// CreateTemplate creates an empty workout blueprint. Duplicate template
// names are allowed.
func (db *DB) CreateTemplate(ctx context.Context, name string) (*models.Template, error) {
	now := db.now()
	t := &models.Template{
		ID:        identity.NewID().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.withTx(ctx, []string{TableTemplates}, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO templates (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			t.ID, t.Name, now.Unix(), now.Unix(),
		)
		if err != nil {
			return fmt.Errorf("inserting template: %w", mapErr(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// RenameTemplate updates a template's name.
func (db *DB) RenameTemplate(ctx context.Context, id, name string) error {
	return db.withTx(ctx, []string{TableTemplates}, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE templates SET name = ?, updated_at = ? WHERE id = ?`,
			strings.TrimSpace(name), db.now().Unix(), id,
		)
		if err != nil {
			return fmt.Errorf("renaming template %s: %w", id, mapErr(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("renaming template %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// DeleteTemplate removes a template; its template_exercises cascade.
func (db *DB) DeleteTemplate(ctx context.Context, id string) error {
	return db.withTx(ctx, []string{TableTemplates, TableTemplateExercises}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM templates WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting template %s: %w", id, mapErr(err))
		}
		return nil
	})
}

// AddTemplateExercise appends an exercise slot to a template. Sort orders
// come from a per-template counter that only moves forward, so a deleted
// slot's order is never handed out again.
func (db *DB) AddTemplateExercise(ctx context.Context, templateID, exerciseID string, plannedSetCount int) (*models.TemplateExercise, error) {
	te := &models.TemplateExercise{
		ID:              identity.NewID().String(),
		TemplateID:      templateID,
		ExerciseID:      exerciseID,
		PlannedSetCount: plannedSetCount,
	}
	err := db.withTx(ctx, []string{TableTemplateExercises, TableTemplates}, func(tx *sql.Tx) error {
		if err := tx.QueryRow(
			`SELECT next_slot_order FROM templates WHERE id = ?`, templateID,
		).Scan(&te.SortOrder); err != nil {
			return fmt.Errorf("reading slot order for template %s: %w", templateID, mapErr(err))
		}
		_, err := tx.Exec(
			`INSERT INTO template_exercises (id, template_id, exercise_id, sort_order, planned_set_count)
			 VALUES (?, ?, ?, ?, ?)`,
			te.ID, te.TemplateID, te.ExerciseID, te.SortOrder, te.PlannedSetCount,
		)
		if err != nil {
			return fmt.Errorf("inserting template exercise: %w", mapErr(err))
		}
		_, err = tx.Exec(
			`UPDATE templates SET next_slot_order = ?, updated_at = ? WHERE id = ?`,
			te.SortOrder+1, db.now().Unix(), templateID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return te, nil
}

// ListTemplates returns all templates, most recently updated first.
func (db *DB) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM templates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		var t models.Template
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		t.CreatedAt = timeFromUnix(created)
		t.UpdatedAt = timeFromUnix(updated)
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetTemplate retrieves a template with its exercise slots in sort order.
func (db *DB) GetTemplate(ctx context.Context, id string) (*models.Template, []models.TemplateExercise, error) {
	var t models.Template
	var created, updated int64
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &created, &updated)
	if err != nil {
		return nil, nil, fmt.Errorf("querying template %s: %w", id, mapErr(err))
	}
	t.CreatedAt = timeFromUnix(created)
	t.UpdatedAt = timeFromUnix(updated)

	rows, err := db.sql.QueryContext(ctx, `
		SELECT te.id, te.template_id, te.exercise_id, e.name, te.sort_order, te.planned_set_count
		FROM template_exercises te
		JOIN exercises e ON e.id = te.exercise_id
		WHERE te.template_id = ?
		ORDER BY te.sort_order ASC`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("querying template exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.TemplateExercise
	for rows.Next() {
		var te models.TemplateExercise
		if err := rows.Scan(&te.ID, &te.TemplateID, &te.ExerciseID, &te.ExerciseName, &te.SortOrder, &te.PlannedSetCount); err != nil {
			return nil, nil, fmt.Errorf("scanning template exercise: %w", err)
		}
		exercises = append(exercises, te)
	}
	return &t, exercises, rows.Err()
}
