package postgres

import (
	"strings"
	"testing"

	"argoetl/internal/model"
	"argoetl/internal/storage"
)

func TestBuildInsertSQLPlaceholderNumbering(t *testing.T) {
	sql, args := buildInsertSQL("t", []string{"a", "b"}, [][]any{
		{1, "x"},
		{2, "y"},
	}, "")

	want := `INSERT INTO t ("a", "b") VALUES ($1, $2), ($3, $4);`
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("args = %d, want 4", len(args))
	}
	if args[0] != 1 || args[1] != "x" || args[2] != 2 || args[3] != "y" {
		t.Fatalf("args out of order: %v", args)
	}
}

func TestBuildInsertSQLWithConflictSuffix(t *testing.T) {
	sql, _ := buildInsertSQL("t", []string{"a"}, [][]any{{1}},
		conflictNothing([]string{"a"}))
	want := `INSERT INTO t ("a") VALUES ($1) ON CONFLICT ("a") DO NOTHING;`
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
}

func TestConflictUpdateExcludesKeyAndTouches(t *testing.T) {
	cols := []string{"platform_number", "sensor", "sensor_maker", "sensor_model"}
	key := []string{"platform_number", "sensor"}

	clause := conflictUpdate(key, updatableColumns(cols, key), true)

	if strings.Contains(clause, `"platform_number" = EXCLUDED`) {
		t.Fatal("conflict key must not be reassigned")
	}
	for _, want := range []string{
		`"sensor_maker" = EXCLUDED."sensor_maker"`,
		`"sensor_model" = EXCLUDED."sensor_model"`,
		`"updated_at" = CURRENT_TIMESTAMP`,
	} {
		if !strings.Contains(clause, want) {
			t.Fatalf("clause %q missing %q", clause, want)
		}
	}
}

func TestTrajectoryDepthConflictMatchesNaturalKey(t *testing.T) {
	clause := conflictNothing(storage.TrajectoryDepthConflictColumns)
	want := `ON CONFLICT ("platform_number", "cycle_number", "measurement_code", "juld") DO NOTHING`
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
}

func TestRowFlattenersAlignWithColumns(t *testing.T) {
	cases := []struct {
		name string
		cols int
		row  int
	}{
		{"platform", len(storage.PlatformColumns), len(storage.PlatformRow(model.Platform{}))},
		{"metadata", len(storage.MetadataColumns), len(storage.MetadataRow(model.PlatformMetadata{}))},
		{"profile", len(storage.ProfileColumns), len(storage.ProfileRow(model.Profile{}))},
		{"depth", len(storage.DepthColumns), len(storage.DepthRow(model.DepthMeasurement{}))},
		{"trajectory", len(storage.TrajectoryColumns), len(storage.TrajectoryRow(model.TrajectoryCycle{}))},
		{"trajectory_depth", len(storage.TrajectoryDepthColumns), len(storage.TrajectoryDepthRow(model.TrajectoryMeasurement{}))},
		{"parameter", len(storage.ParameterColumns), len(storage.ParameterRow(model.Parameter{}))},
		{"sensor", len(storage.SensorColumns), len(storage.SensorRow(model.Sensor{}))},
		{"config", len(storage.ConfigColumns), len(storage.ConfigRow(model.ConfigEntry{}))},
		{"launch_config", len(storage.LaunchConfigColumns), len(storage.LaunchConfigRow(model.LaunchConfigEntry{}))},
		{"history", len(storage.HistoryColumns), len(storage.HistoryRow(model.HistoryEntry{}))},
	}
	for _, c := range cases {
		if c.cols != c.row {
			t.Errorf("%s: %d columns but %d row values", c.name, c.cols, c.row)
		}
	}
}
