// Package seed loads the bundled reference exercise list into the store.
package seed

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/liftlog/liftlog/internal/storage"
)

//go:embed exercises.txt
var bundled embed.FS

// Load inserts the bundled exercises. Ids derive from names, inserts are
// insert-if-absent: running this on every startup is safe. Returns how many
// rows were actually created.
func Load(ctx context.Context, db *storage.DB, log *slog.Logger) (int, error) {
	data, err := bundled.ReadFile("exercises.txt")
	if err != nil {
		return 0, fmt.Errorf("reading bundled exercise list: %w", err)
	}
	return load(ctx, db, log, bytes.NewReader(data))
}

// LoadFile seeds from an external list instead of the bundled one.
func LoadFile(ctx context.Context, db *storage.DB, log *slog.Logger, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return load(ctx, db, log, f)
}

func load(ctx context.Context, db *storage.DB, log *slog.Logger, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	inserted := 0
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		_, created, err := db.InsertExerciseIfAbsent(ctx, name)
		if err != nil {
			return inserted, fmt.Errorf("seeding %q: %w", name, err)
		}
		if created {
			inserted++
		}
	}
	if err := scanner.Err(); err != nil {
		return inserted, fmt.Errorf("reading seed list: %w", err)
	}
	log.Info("seed complete", "inserted", inserted)
	return inserted, nil
}
