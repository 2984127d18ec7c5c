// Package config loads process configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the resolved process configuration.
type Config struct {
	// DatabaseURL is the DSN handed to the storage backend.
	DatabaseURL string

	// StorageKind selects the registered storage backend.
	StorageKind string

	// BatchSize caps rows per insert statement. Zero means the backend
	// default.
	BatchSize int

	// AutoCreateTables runs EnsureSchema before processing.
	AutoCreateTables bool

	// MetricsBackend names the metrics backend ("datadog" or "none").
	MetricsBackend string

	// MetricsTags is a comma-separated tag list forwarded to the
	// metrics backend.
	MetricsTags string

	// LogLevel is a logrus level name.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over file entries.
func Load() (Config, error) {
	// godotenv.Load never overrides variables already set, which is
	// the precedence we want.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StorageKind:      envOr("STORAGE_KIND", "postgres"),
		AutoCreateTables: envBool("AUTO_CREATE_TABLES", true),
		MetricsBackend:   envOr("METRICS_BACKEND", "none"),
		MetricsTags:      os.Getenv("METRICS_TAGS"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
	}

	n, err := envInt("BATCH_SIZE", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.BatchSize = n

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is required")
	}
	return cfg, nil
}

// Level parses LogLevel, falling back to Info on junk so a typo in an
// env file degrades log verbosity instead of killing the run.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
