package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/liftlog.db
search:
  frequency_weight: 0.5
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Path != "/tmp/liftlog.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Search.FrequencyWeight != 0.5 {
		t.Errorf("frequency weight = %v", cfg.Search.FrequencyWeight)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "database:\n  path: /tmp/liftlog.db\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.FrequencyWeight != defaultFrequencyWeight {
		t.Errorf("frequency weight = %v, want default", cfg.Search.FrequencyWeight)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  path: /tmp/from-file.db\nlog:\n  level: info\n")
	t.Setenv("LIFTLOG_DB_PATH", "/tmp/from-env.db")
	t.Setenv("LIFTLOG_SEARCH_FREQUENCY_WEIGHT", "0.7")
	t.Setenv("LIFTLOG_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("db path = %q, env override lost", cfg.Database.Path)
	}
	if cfg.Search.FrequencyWeight != 0.7 {
		t.Errorf("frequency weight = %v", cfg.Search.FrequencyWeight)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing db path", "log:\n  level: info\n", "database.path"},
		{"negative weight", "database:\n  path: /tmp/x.db\nsearch:\n  frequency_weight: -1\n", "frequency_weight"},
		{"bad log level", "database:\n  path: /tmp/x.db\nlog:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
