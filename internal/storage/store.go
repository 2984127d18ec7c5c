package storage

import (
	"context"
	"fmt"
	"sync"

	"argoetl/internal/model"
)

// Config is the minimal configuration needed to construct a Store.
//
// Edge cases:
//   - Kind must be non-empty and must match a registered backend kind.
//   - DSN is passed through to the backend factory; validation is backend-specific.
//   - BatchSize <= 0 falls back to the backend default (1000 rows).
type Config struct {
	Kind      string
	DSN       string
	BatchSize int
}

// Store is the backend-agnostic persistence contract for the ingestion
// pipeline.
//
// IMPORTANT: Ordering is the caller's job. Parent rows (profiles,
// trajectory cycles) must be persisted and their identifiers threaded
// into child rows before the child insert methods are called; the store
// does not reorder or backfill.
//
// Batch methods are atomic per call: either every row in the batch is
// applied or none is.
type Store interface {
	// Close releases backend resources. Call once at shutdown.
	Close()

	// EnsureSchema creates destination tables when they do not exist.
	EnsureSchema(ctx context.Context) error

	// UpsertPlatform inserts or fully refreshes a float_table row.
	UpsertPlatform(ctx context.Context, p model.Platform) error

	// HasPlatformMetadata reports whether meta_table already has a row
	// for this platform.
	HasPlatformMetadata(ctx context.Context, platformNumber string) (bool, error)

	// UpsertPlatformMetadata inserts or overwrites the meta_table row.
	// On conflict every column is replaced, including columns the
	// incoming record leaves empty.
	UpsertPlatformMetadata(ctx context.Context, m model.PlatformMetadata) error

	// UpsertProfiles persists profiles and returns the identifier map
	// keyed by (platform, cycle, juld). Rows matching an existing
	// profile reuse its identifier instead of inserting.
	UpsertProfiles(ctx context.Context, profiles []model.Profile) (map[model.ProfileKey]int64, error)

	// InsertDepthMeasurements appends depth rows. There is no uniqueness
	// constraint on this table; reprocessing a file grows it.
	InsertDepthMeasurements(ctx context.Context, rows []model.DepthMeasurement) (int64, error)

	// UpsertTrajectoryCycles inserts or refreshes cycle summaries.
	UpsertTrajectoryCycles(ctx context.Context, cycles []model.TrajectoryCycle) (int64, error)

	// TrajectoryCycleIDs returns cycle_number -> trajectory_id for a
	// platform, for threading identifiers into measurement rows.
	TrajectoryCycleIDs(ctx context.Context, platformNumber string) (map[int64]int64, error)

	// InsertTrajectoryMeasurements appends measurement rows, silently
	// skipping rows whose composite key already exists.
	InsertTrajectoryMeasurements(ctx context.Context, rows []model.TrajectoryMeasurement) (int64, error)

	// UpsertParameters inserts parameter rows, ignoring duplicates.
	UpsertParameters(ctx context.Context, rows []model.Parameter) (int64, error)

	// UpsertSensors inserts or refreshes sensor rows.
	UpsertSensors(ctx context.Context, rows []model.Sensor) (int64, error)

	// UpsertConfigEntries inserts or refreshes mission config rows.
	UpsertConfigEntries(ctx context.Context, rows []model.ConfigEntry) (int64, error)

	// UpsertLaunchConfigEntries inserts or refreshes launch config rows.
	UpsertLaunchConfigEntries(ctx context.Context, rows []model.LaunchConfigEntry) (int64, error)

	// UpsertHistoryEntries inserts or refreshes processing history rows.
	UpsertHistoryEntries(ctx context.Context, rows []model.HistoryEntry) (int64, error)
}

/* ---- backend factories ---- */

type factory func(ctx context.Context, cfg Config) (Store, error)

var (
	mu        sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a backend under a kind (e.g. "postgres", "sqlite").
//
// When to use:
//   - Call Register from an init() function in a backend package.
//
// Panics:
//   - If kind is empty.
//   - If f is nil.
//   - If kind is already registered. This is intentional to fail fast
//     and avoid ambiguous backend selection.
func Register(kind string, f factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("storage: Register called with empty kind")
	}
	if f == nil {
		panic("storage: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("storage: factory already registered for kind=%q", kind))
	}

	factories[kind] = f
}

// New constructs a Store using the registered backend factory.
//
// Errors:
//   - Returns an error if cfg.Kind is empty or unsupported.
//   - Returns whatever error the registered factory returns.
func New(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("storage: missing Kind")
	}

	mu.RLock()
	f := factories[cfg.Kind]
	mu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}
