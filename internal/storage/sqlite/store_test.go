package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"argoetl/internal/model"
	"argoetl/internal/storage"
)

func newTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	s, err := New(ctx, storage.Config{DSN: filepath.Join(t.TempDir(), "argo.db")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return s, ctx
}

func countRows(t *testing.T, s *Store, table string) int64 {
	t.Helper()
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func ts(s string) *time.Time {
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	tm = tm.UTC()
	return &tm
}

// Reprocessing the same profile batch must hand back the ids of the
// first pass, including for a profile whose cycle number and timestamp
// are NULL. The lookup uses IS rather than =, so NULL matches NULL.
func TestUpsertProfiles_ReprocessingKeepsIDs(t *testing.T) {
	s, ctx := newTestStore(t)

	if err := s.UpsertPlatform(ctx, model.Platform{
		PlatformNumber: "5904471",
		ProjectName:    "Argo Australia",
	}); err != nil {
		t.Fatalf("UpsertPlatform: %v", err)
	}

	profiles := []model.Profile{
		{
			PlatformNumber: "5904471",
			CycleNumber:    i64(7),
			JULD:           ts("2020-01-01T12:00:00Z"),
			Direction:      "A",
			DataMode:       "R",
		},
		{
			PlatformNumber: "5904471",
			Direction:      "A",
			DataMode:       "R",
		},
	}

	first, err := s.UpsertProfiles(ctx, profiles)
	if err != nil {
		t.Fatalf("UpsertProfiles: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("ids=%d, want 2", len(first))
	}
	for k, id := range first {
		if id <= 0 {
			t.Fatalf("id for %+v = %d", k, id)
		}
	}

	second, err := s.UpsertProfiles(ctx, profiles)
	if err != nil {
		t.Fatalf("UpsertProfiles again: %v", err)
	}
	for k, id := range first {
		if second[k] != id {
			t.Errorf("id for %+v changed: %d -> %d", k, id, second[k])
		}
	}
	if n := countRows(t, s, storage.TableProfile); n != 2 {
		t.Fatalf("profile rows=%d, want 2", n)
	}
}

func TestInsertDepthMeasurements_AppendsUnderProfile(t *testing.T) {
	s, ctx := newTestStore(t)

	ids, err := s.UpsertProfiles(ctx, []model.Profile{{
		PlatformNumber: "5904471",
		CycleNumber:    i64(7),
		JULD:           ts("2020-01-01T12:00:00Z"),
		Direction:      "A",
	}})
	if err != nil {
		t.Fatalf("UpsertProfiles: %v", err)
	}
	var profileID int64
	for _, id := range ids {
		profileID = id
	}

	rows := []model.DepthMeasurement{
		{ProfileID: profileID, PlatformNumber: "5904471", CycleNumber: i64(7), Pres: f64(5.1), Temp: f64(14.2)},
		{ProfileID: profileID, PlatformNumber: "5904471", CycleNumber: i64(7), Pres: f64(10.3), Temp: f64(13.8)},
	}
	n, err := s.InsertDepthMeasurements(ctx, rows)
	if err != nil {
		t.Fatalf("InsertDepthMeasurements: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted=%d, want 2", n)
	}

	// Depth rows carry no natural key; dedupe is the caller's job and a
	// second insert of the same rows appends.
	if _, err := s.InsertDepthMeasurements(ctx, rows); err != nil {
		t.Fatalf("InsertDepthMeasurements again: %v", err)
	}
	if got := countRows(t, s, storage.TableDepth); got != 4 {
		t.Fatalf("depth rows=%d, want 4", got)
	}

	// The foreign key is enforced; an unstamped row cannot land.
	if _, err := s.InsertDepthMeasurements(ctx, []model.DepthMeasurement{
		{ProfileID: profileID + 999, PlatformNumber: "5904471"},
	}); err == nil {
		t.Fatalf("expected foreign key violation for unknown profile id")
	}
}

func TestTrajectoryRoundTrip_ReinsertIsNoOp(t *testing.T) {
	s, ctx := newTestStore(t)

	cycles := []model.TrajectoryCycle{
		{PlatformNumber: "6901929", CycleNumber: i64(1), JULDAscentEnd: ts("2020-01-05T06:00:00Z"), DataMode: "R", Grounded: "N"},
		{PlatformNumber: "6901929", CycleNumber: i64(2), JULDAscentEnd: ts("2020-01-15T06:00:00Z"), DataMode: "R", Grounded: "U"},
	}
	if _, err := s.UpsertTrajectoryCycles(ctx, cycles); err != nil {
		t.Fatalf("UpsertTrajectoryCycles: %v", err)
	}

	ids, err := s.TrajectoryCycleIDs(ctx, "6901929")
	if err != nil {
		t.Fatalf("TrajectoryCycleIDs: %v", err)
	}
	if len(ids) != 2 || ids[1] == 0 || ids[2] == 0 || ids[1] == ids[2] {
		t.Fatalf("ids=%v, want distinct ids for cycles 1 and 2", ids)
	}

	measurements := []model.TrajectoryMeasurement{
		{TrajectoryID: ids[1], PlatformNumber: "6901929", CycleNumber: i64(1), MeasurementCode: i64(703), JULD: ts("2020-01-05T03:00:00Z"), Latitude: f64(-30.1)},
		{TrajectoryID: ids[2], PlatformNumber: "6901929", CycleNumber: i64(2), MeasurementCode: i64(703), JULD: ts("2020-01-15T03:00:00Z"), Latitude: f64(-30.2)},
		{TrajectoryID: ids[2], PlatformNumber: "6901929", CycleNumber: i64(2), MeasurementCode: i64(704), JULD: ts("2020-01-15T04:00:00Z"), Latitude: f64(-30.3)},
	}
	n, err := s.InsertTrajectoryMeasurements(ctx, measurements)
	if err != nil {
		t.Fatalf("InsertTrajectoryMeasurements: %v", err)
	}
	if n != 3 {
		t.Fatalf("inserted=%d, want 3", n)
	}

	// Reprocessing the same file: cycle summaries update in place, the
	// measurement conflict key makes every row a no-op insert.
	if _, err := s.UpsertTrajectoryCycles(ctx, cycles); err != nil {
		t.Fatalf("UpsertTrajectoryCycles again: %v", err)
	}
	again, err := s.TrajectoryCycleIDs(ctx, "6901929")
	if err != nil {
		t.Fatalf("TrajectoryCycleIDs again: %v", err)
	}
	if again[1] != ids[1] || again[2] != ids[2] {
		t.Fatalf("trajectory ids changed: %v -> %v", ids, again)
	}

	n, err = s.InsertTrajectoryMeasurements(ctx, measurements)
	if err != nil {
		t.Fatalf("InsertTrajectoryMeasurements again: %v", err)
	}
	if n != 0 {
		t.Fatalf("reinsert affected %d rows, want 0", n)
	}
	if got := countRows(t, s, storage.TableTrajectoryDepth); got != 3 {
		t.Fatalf("measurement rows=%d, want 3", got)
	}
}

func TestUpsertPlatformMetadata_GateAndOverwrite(t *testing.T) {
	s, ctx := newTestStore(t)

	has, err := s.HasPlatformMetadata(ctx, "1901393")
	if err != nil {
		t.Fatalf("HasPlatformMetadata: %v", err)
	}
	if has {
		t.Fatalf("metadata reported present on empty database")
	}

	md := model.PlatformMetadata{
		PlatformNumber: "1901393",
		DataType:       "Argo meta",
		PIName:         "S. Riser",
		LaunchDate:     ts("2011-01-21T04:15:00Z"),
	}
	if err := s.UpsertPlatformMetadata(ctx, md); err != nil {
		t.Fatalf("UpsertPlatformMetadata: %v", err)
	}

	md.PIName = "D. Roemmich"
	if err := s.UpsertPlatformMetadata(ctx, md); err != nil {
		t.Fatalf("UpsertPlatformMetadata again: %v", err)
	}

	has, err = s.HasPlatformMetadata(ctx, "1901393")
	if err != nil {
		t.Fatalf("HasPlatformMetadata: %v", err)
	}
	if !has {
		t.Fatalf("metadata missing after upsert")
	}

	var pi string
	if err := s.db.QueryRow(
		`SELECT pi_name FROM meta_table WHERE platform_number = ?`, "1901393",
	).Scan(&pi); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if pi != "D. Roemmich" {
		t.Fatalf("pi_name=%q, want second write to win", pi)
	}
	if n := countRows(t, s, storage.TableMetadata); n != 1 {
		t.Fatalf("metadata rows=%d, want 1", n)
	}
}
