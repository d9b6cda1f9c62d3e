package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SeedConfig struct {
	// Path overrides the bundled exercise list.
	Path string `yaml:"path"`
}

type SearchConfig struct {
	// FrequencyWeight blends usage frequency into fuzzy scores.
	// Zero means "unset" and falls back to the default.
	FrequencyWeight float64 `yaml:"frequency_weight"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const defaultFrequencyWeight = 0.2

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTLOG_:
//
//	LIFTLOG_DB_PATH, LIFTLOG_SEED_PATH,
//	LIFTLOG_SEARCH_FREQUENCY_WEIGHT, LIFTLOG_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTLOG_SEED_PATH"); v != "" {
		cfg.Seed.Path = v
	}
	if v := os.Getenv("LIFTLOG_SEARCH_FREQUENCY_WEIGHT"); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.FrequencyWeight = w
		}
	}
	if v := os.Getenv("LIFTLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Search.FrequencyWeight == 0 {
		cfg.Search.FrequencyWeight = defaultFrequencyWeight
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Search.FrequencyWeight < 0 {
		return fmt.Errorf("search.frequency_weight must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}
