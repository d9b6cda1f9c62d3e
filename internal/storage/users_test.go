package storage

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "Alex", "  Alex@Example.COM ", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "alex@example.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}

	got, err := db.UserByEmail(ctx, "ALEX@example.com")
	if err != nil {
		t.Fatalf("lookup by differently cased email: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("lookup returned %s, want %s", got.ID, u.ID)
	}

	_, err = db.CreateUser(ctx, "Other", "alex@example.com", "hash2")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email: err = %v, want ErrConflict", err)
	}

	if err := db.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.UserByEmail(ctx, "alex@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup after delete: err = %v, want ErrNotFound", err)
	}
}
