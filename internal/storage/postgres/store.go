// Package postgres implements storage.Store on pgx.
//
// Upsert semantics per table:
//   - float_table, meta_table, sensor_table, config_table,
//     launch_config_table, history_table: ON CONFLICT DO UPDATE (full
//     column overwrite).
//   - parameter_table: ON CONFLICT DO NOTHING (first write wins).
//   - trajectory_depth_table: ON CONFLICT DO NOTHING on the composite
//     natural key.
//   - profile_table: SELECT-then-INSERT ... RETURNING so callers get a
//     stable profile_id for both new and existing rows.
//   - depth_measurements_table: plain insert; no key exists to conflict on.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"argoetl/internal/model"
	"argoetl/internal/storage"
)

const defaultBatchSize = 1000

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		return New(ctx, cfg)
	})
}

// Store implements storage.Store for Postgres.
type Store struct {
	pool  *pgxpool.Pool
	batch int
}

// New creates a Postgres-backed Store.
func New(ctx context.Context, cfg storage.Config) (*Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Store{pool: pool, batch: batch}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates destination tables that do not yet exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) UpsertPlatform(ctx context.Context, p model.Platform) error {
	conflict := conflictUpdate(
		[]string{"platform_number"},
		updatableColumns(storage.PlatformColumns, []string{"platform_number"}),
		true,
	)
	sql, args := buildInsertSQL(storage.TablePlatform, storage.PlatformColumns,
		[][]any{storage.PlatformRow(p)}, conflict)
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("postgres: upsert platform %s: %w", p.PlatformNumber, err)
	}
	return nil
}

func (s *Store) HasPlatformMetadata(ctx context.Context, platformNumber string) (bool, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM meta_table WHERE platform_number = $1`, platformNumber,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("postgres: check metadata %s: %w", platformNumber, err)
	}
	return n > 0, nil
}

func (s *Store) UpsertPlatformMetadata(ctx context.Context, m model.PlatformMetadata) error {
	conflict := conflictUpdate(
		[]string{"platform_number"},
		updatableColumns(storage.MetadataColumns, []string{"platform_number"}),
		true,
	)
	sql, args := buildInsertSQL(storage.TableMetadata, storage.MetadataColumns,
		[][]any{storage.MetadataRow(m)}, conflict)
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("postgres: upsert metadata %s: %w", m.PlatformNumber, err)
	}
	return nil
}

// UpsertProfiles persists profiles inside one transaction and returns
// profile ids keyed by (platform, cycle, juld).
//
// The lookup uses IS NOT DISTINCT FROM so a NULL juld matches an
// existing NULL row instead of always inserting a duplicate.
func (s *Store) UpsertProfiles(ctx context.Context, profiles []model.Profile) (map[model.ProfileKey]int64, error) {
	out := make(map[model.ProfileKey]int64, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin profiles: %w", err)
	}
	defer tx.Rollback(ctx)

	insertSQL, _ := buildInsertSQL(storage.TableProfile, storage.ProfileColumns,
		[][]any{make([]any, len(storage.ProfileColumns))}, "")
	// trim the builder's trailing ";" so RETURNING can be appended
	insertSQL = insertSQL[:len(insertSQL)-1] + " RETURNING profile_id;"

	for _, p := range profiles {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT profile_id FROM profile_table
			 WHERE platform_number = $1
			   AND cycle_number IS NOT DISTINCT FROM $2
			   AND juld IS NOT DISTINCT FROM $3`,
			p.PlatformNumber, p.CycleNumber, p.JULD,
		).Scan(&id)
		if err == nil {
			out[p.KeyFor()] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres: lookup profile %s/%v: %w", p.PlatformNumber, p.CycleNumber, err)
		}

		if err := tx.QueryRow(ctx, insertSQL, storage.ProfileRow(p)...).Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: insert profile %s/%v: %w", p.PlatformNumber, p.CycleNumber, err)
		}
		out[p.KeyFor()] = id
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres: commit profiles: %w", err)
	}
	return out, nil
}

func (s *Store) InsertDepthMeasurements(ctx context.Context, rows []model.DepthMeasurement) (int64, error) {
	return insertChunked(ctx, s, storage.TableDepth, storage.DepthColumns, len(rows), "",
		func(i int) []any { return storage.DepthRow(rows[i]) })
}

func (s *Store) UpsertTrajectoryCycles(ctx context.Context, cycles []model.TrajectoryCycle) (int64, error) {
	key := []string{"platform_number", "cycle_number"}
	conflict := conflictUpdate(key, updatableColumns(storage.TrajectoryColumns, key), true)
	return insertChunked(ctx, s, storage.TableTrajectory, storage.TrajectoryColumns, len(cycles), conflict,
		func(i int) []any { return storage.TrajectoryRow(cycles[i]) })
}

func (s *Store) TrajectoryCycleIDs(ctx context.Context, platformNumber string) (map[int64]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT cycle_number, trajectory_id FROM trajectory_table
		 WHERE platform_number = $1 AND cycle_number IS NOT NULL
		 ORDER BY cycle_number`, platformNumber)
	if err != nil {
		return nil, fmt.Errorf("postgres: trajectory ids %s: %w", platformNumber, err)
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var cycle, id int64
		if err := rows.Scan(&cycle, &id); err != nil {
			return nil, fmt.Errorf("postgres: scan trajectory id: %w", err)
		}
		out[cycle] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: trajectory ids %s: %w", platformNumber, err)
	}
	return out, nil
}

func (s *Store) InsertTrajectoryMeasurements(ctx context.Context, rows []model.TrajectoryMeasurement) (int64, error) {
	conflict := conflictNothing(storage.TrajectoryDepthConflictColumns)
	return insertChunked(ctx, s, storage.TableTrajectoryDepth, storage.TrajectoryDepthColumns, len(rows), conflict,
		func(i int) []any { return storage.TrajectoryDepthRow(rows[i]) })
}

func (s *Store) UpsertParameters(ctx context.Context, rows []model.Parameter) (int64, error) {
	conflict := conflictNothing([]string{"platform_number", "parameter"})
	return insertChunked(ctx, s, storage.TableParameter, storage.ParameterColumns, len(rows), conflict,
		func(i int) []any { return storage.ParameterRow(rows[i]) })
}

func (s *Store) UpsertSensors(ctx context.Context, rows []model.Sensor) (int64, error) {
	key := []string{"platform_number", "sensor"}
	conflict := conflictUpdate(key, updatableColumns(storage.SensorColumns, key), true)
	return insertChunked(ctx, s, storage.TableSensor, storage.SensorColumns, len(rows), conflict,
		func(i int) []any { return storage.SensorRow(rows[i]) })
}

func (s *Store) UpsertConfigEntries(ctx context.Context, rows []model.ConfigEntry) (int64, error) {
	key := []string{"platform_number", "config_parameter_name"}
	conflict := conflictUpdate(key, updatableColumns(storage.ConfigColumns, key), true)
	return insertChunked(ctx, s, storage.TableConfig, storage.ConfigColumns, len(rows), conflict,
		func(i int) []any { return storage.ConfigRow(rows[i]) })
}

func (s *Store) UpsertLaunchConfigEntries(ctx context.Context, rows []model.LaunchConfigEntry) (int64, error) {
	key := []string{"platform_number", "launch_config_parameter_name"}
	conflict := conflictUpdate(key, updatableColumns(storage.LaunchConfigColumns, key), true)
	return insertChunked(ctx, s, storage.TableLaunchConfig, storage.LaunchConfigColumns, len(rows), conflict,
		func(i int) []any { return storage.LaunchConfigRow(rows[i]) })
}

func (s *Store) UpsertHistoryEntries(ctx context.Context, rows []model.HistoryEntry) (int64, error) {
	conflict := conflictUpdate(storage.HistoryConflictColumns,
		updatableColumns(storage.HistoryColumns, storage.HistoryConflictColumns), true)
	return insertChunked(ctx, s, storage.TableHistory, storage.HistoryColumns, len(rows), conflict,
		func(i int) []any { return storage.HistoryRow(rows[i]) })
}

// insertChunked performs a batched multi-row insert. Each chunk is one
// statement, so a chunk either lands fully or not at all.
func insertChunked(
	ctx context.Context,
	s *Store,
	table string,
	columns []string,
	n int,
	conflict string,
	row func(i int) []any,
) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	var total int64
	for start := 0; start < n; start += s.batch {
		end := start + s.batch
		if end > n {
			end = n
		}
		chunk := make([][]any, 0, end-start)
		for i := start; i < end; i++ {
			chunk = append(chunk, row(i))
		}
		sql, args := buildInsertSQL(table, columns, chunk, conflict)
		cmd, err := s.pool.Exec(ctx, sql, args...)
		if err != nil {
			return total, fmt.Errorf("postgres: insert into %s: %w", table, err)
		}
		total += cmd.RowsAffected()
	}
	return total, nil
}

var _ storage.Store = (*Store)(nil)
