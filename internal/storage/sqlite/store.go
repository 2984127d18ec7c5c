// Package sqlite implements storage.Store on database/sql with the
// modernc.org/sqlite driver. It exists for local runs and tests where
// standing up Postgres is not worth it; semantics match the Postgres
// backend table for table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"argoetl/internal/model"
	"argoetl/internal/storage"
)

const (
	defaultBatchSize = 1000

	// SQLite caps host parameters per statement; chunks shrink to fit.
	maxParams = 32000
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		return New(ctx, cfg)
	})
}

// Store implements storage.Store for SQLite.
type Store struct {
	db    *sql.DB
	batch int
}

// New opens (creating if needed) the database file named by cfg.DSN.
func New(ctx context.Context, cfg storage.Config) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps the foreign_keys pragma in force everywhere
	// and sidesteps SQLITE_BUSY between pooled writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Store{db: db, batch: batch}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

// EnsureSchema creates destination tables that do not yet exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: ensure schema: %w", err)
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
	q, args := buildInsertSQL(storage.TablePlatform, storage.PlatformColumns,
		[][]any{storage.PlatformRow(p)}, conflict)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("sqlite: upsert platform %s: %w", p.PlatformNumber, err)
	}
	return nil
}

func (s *Store) HasPlatformMetadata(ctx context.Context, platformNumber string) (bool, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM meta_table WHERE platform_number = ?`, platformNumber,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: check metadata %s: %w", platformNumber, err)
	}
	return n > 0, nil
}

func (s *Store) UpsertPlatformMetadata(ctx context.Context, m model.PlatformMetadata) error {
	conflict := conflictUpdate(
		[]string{"platform_number"},
		updatableColumns(storage.MetadataColumns, []string{"platform_number"}),
		true,
	)
	q, args := buildInsertSQL(storage.TableMetadata, storage.MetadataColumns,
		[][]any{storage.MetadataRow(m)}, conflict)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("sqlite: upsert metadata %s: %w", m.PlatformNumber, err)
	}
	return nil
}

// UpsertProfiles persists profiles inside one transaction and returns
// profile ids keyed by (platform, cycle, juld). The lookup uses the
// SQLite IS operator so a NULL juld matches an existing NULL row.
func (s *Store) UpsertProfiles(ctx context.Context, profiles []model.Profile) (map[model.ProfileKey]int64, error) {
	out := make(map[model.ProfileKey]int64, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin profiles: %w", err)
	}
	defer tx.Rollback()

	insertSQL, _ := buildInsertSQL(storage.TableProfile, storage.ProfileColumns,
		[][]any{make([]any, len(storage.ProfileColumns))}, "")
	insertSQL = insertSQL[:len(insertSQL)-1] + " RETURNING profile_id;"

	for _, p := range profiles {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT profile_id FROM profile_table
			 WHERE platform_number = ?
			   AND cycle_number IS ?
			   AND juld IS ?`,
			p.PlatformNumber, p.CycleNumber, p.JULD,
		).Scan(&id)
		if err == nil {
			out[p.KeyFor()] = id
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sqlite: lookup profile %s/%v: %w", p.PlatformNumber, p.CycleNumber, err)
		}

		if err := tx.QueryRowContext(ctx, insertSQL, storage.ProfileRow(p)...).Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: insert profile %s/%v: %w", p.PlatformNumber, p.CycleNumber, err)
		}
		out[p.KeyFor()] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: commit profiles: %w", err)
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
	rows, err := s.db.QueryContext(ctx,
		`SELECT cycle_number, trajectory_id FROM trajectory_table
		 WHERE platform_number = ? AND cycle_number IS NOT NULL
		 ORDER BY cycle_number`, platformNumber)
	if err != nil {
		return nil, fmt.Errorf("sqlite: trajectory ids %s: %w", platformNumber, err)
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var cycle, id int64
		if err := rows.Scan(&cycle, &id); err != nil {
			return nil, fmt.Errorf("sqlite: scan trajectory id: %w", err)
		}
		out[cycle] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: trajectory ids %s: %w", platformNumber, err)
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

	batch := s.batch
	if limit := maxParams / len(columns); batch > limit {
		batch = limit
	}

	var total int64
	for start := 0; start < n; start += batch {
		end := start + batch
		if end > n {
			end = n
		}
		chunk := make([][]any, 0, end-start)
		for i := start; i < end; i++ {
			chunk = append(chunk, row(i))
		}
		q, args := buildInsertSQL(table, columns, chunk, conflict)
		res, err := s.db.ExecContext(ctx, q, args...)
		if err != nil {
			return total, fmt.Errorf("sqlite: insert into %s: %w", table, err)
		}
		affected, err := res.RowsAffected()
		if err == nil {
			total += affected
		}
	}
	return total, nil
}

var _ storage.Store = (*Store)(nil)
