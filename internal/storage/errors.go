package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness
	// constraint (duplicate exercise name, duplicate email, second
	// pending workout).
	ErrConflict = errors.New("conflict")

	// ErrRestricted is returned when a delete is rejected because other
	// rows still reference the target (e.g. an exercise used by a
	// template).
	ErrRestricted = errors.New("restricted by reference")
)

// sqlite primary result and extended result codes, see sqlite3 C API docs.
// The driver enforces foreign keys with internal triggers, so restrict
// violations surface as SQLITE_CONSTRAINT_TRIGGER rather than
// SQLITE_CONSTRAINT_FOREIGNKEY.
const (
	sqliteConstraint           = 19
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintTrigger    = 1811
	sqliteConstraintUnique     = 2067
)

// mapErr translates driver errors into the store's typed errors so callers
// never inspect sqlite codes themselves.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case sqliteConstraintForeignKey, sqliteConstraintTrigger:
			return fmt.Errorf("%w: %v", ErrRestricted, err)
		}
		if se.Code()&0xff == sqliteConstraint {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}

func isConflict(err error) bool {
	return errors.Is(mapErr(err), ErrConflict)
}
