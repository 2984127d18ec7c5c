package assemble

import (
	"strings"
	"testing"

	"argoetl/internal/ncdf"
)

func TestDetectKind(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/data/1901393_meta.nc", "meta"},
		{"/data/1901393_prof.nc", "profile"},
		{"/data/R1901393_042.nc", "unknown"},
		{"/data/1901393_Rtraj.nc", "trajectory"},
		{"metadata_dump.nc", "meta"},
		{"whatever.nc", "unknown"},
	}
	for _, c := range cases {
		if got := string(DetectKind(c.path)); got != c.want {
			t.Errorf("DetectKind(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func metaSource() *ncdf.Memory {
	m := ncdf.NewMemory()
	m.Vars["PLATFORM_NUMBER"] = []string{"1901393"}
	m.Vars["DATA_TYPE"] = "Argo meta-data"
	m.Vars["PROJECT_NAME"] = "US ARGO PROJECT"
	m.Vars["PI_NAME"] = "BRECK OWENS"
	m.Vars["LAUNCH_DATE"] = "20110121041500"
	m.Vars["LAUNCH_QC"] = "1 extra"
	m.Vars["LAUNCH_LATITUDE"] = []float64{-20.528}
	m.Vars["BATTERY_PACKS"] = "alkaline board - 4 (s/n: 41);"
	m.Vars["CONTROLLER_BOARD_SERIAL_NO_PRIMARY"] = "7343"
	return m
}

func TestMeta_ScalarVariables(t *testing.T) {
	got, err := Meta(metaSource())
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if got.PlatformNumber != "1901393" {
		t.Fatalf("platform = %q", got.PlatformNumber)
	}
	md := got.Metadata
	if md.DataType != "Argo meta-data" {
		t.Errorf("data type = %q", md.DataType)
	}
	if md.SerialNoPrimary != "7343" {
		t.Errorf("serial_no_primary = %q", md.SerialNoPrimary)
	}
	if md.LaunchDate == nil || md.LaunchDate.Year() != 2011 || md.LaunchDate.Month() != 1 {
		t.Errorf("launch date = %v", md.LaunchDate)
	}
	if md.LaunchQC != "1" {
		t.Errorf("launch qc = %q, want single char", md.LaunchQC)
	}
	if md.LaunchLatitude == nil || *md.LaunchLatitude != -20.528 {
		t.Errorf("launch latitude = %v", md.LaunchLatitude)
	}
	if md.BatteryPacks == nil || *md.BatteryPacks != 4 {
		t.Errorf("battery packs = %v", md.BatteryPacks)
	}
}

func TestMeta_PlatformRecord(t *testing.T) {
	m := metaSource()
	m.Vars["WMO_INST_TYPE"] = "846 variant X"
	m.Vars["POSITIONING_SYSTEM"] = "GPS"

	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	p := got.Platform
	if p.PlatformNumber != "1901393" {
		t.Fatalf("platform = %q", p.PlatformNumber)
	}
	if p.ProjectName != "US ARGO PROJECT" {
		t.Errorf("project name = %q", p.ProjectName)
	}
	if p.WMOInstType != "846 varian" {
		t.Errorf("wmo inst type = %q, want clipped to 10", p.WMOInstType)
	}
	if p.PositioningSystem != "GPS" {
		t.Errorf("positioning = %q", p.PositioningSystem)
	}

	delete(m.Vars, "PROJECT_NAME")
	got, err = Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if got.Platform.ProjectName != "Unknown Project" {
		t.Errorf("project name = %q, want default", got.Platform.ProjectName)
	}
}

func TestMeta_DataTypeDefault(t *testing.T) {
	m := ncdf.NewMemory()
	m.Vars["PLATFORM_NUMBER"] = []string{"42"}
	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if got.Metadata.DataType != "Argo meta" {
		t.Errorf("data type = %q, want default", got.Metadata.DataType)
	}
}

func TestMeta_NoPlatformNumberFails(t *testing.T) {
	if _, err := Meta(ncdf.NewMemory()); err == nil {
		t.Fatalf("expected error for missing platform number")
	}
}

func TestMeta_Parameters(t *testing.T) {
	m := metaSource()
	m.Vars["PARAMETER"] = []string{"PRES", "  ", "TEMP"}
	m.Vars["PARAMETER_SENSOR"] = []string{"CTD_PRES", "", "CTD_TEMP"}
	m.Vars["PREDEPLOYMENT_CALIB_COEFFICIENT"] = []string{"n/a", "", "a=1.2,b=0.4"}

	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if len(got.Parameters) != 2 {
		t.Fatalf("parameters = %d, want blank name skipped", len(got.Parameters))
	}
	if got.Parameters[0].Coefficient != nil {
		t.Errorf("n/a coefficient should be nil, got %v", *got.Parameters[0].Coefficient)
	}
	if got.Parameters[1].Coefficient == nil || *got.Parameters[1].Coefficient != "a=1.2,b=0.4" {
		t.Errorf("coefficient = %v", got.Parameters[1].Coefficient)
	}
	if got.Parameters[1].ParameterSensor != "CTD_TEMP" {
		t.Errorf("sensor stayed index-aligned across skip: %q", got.Parameters[1].ParameterSensor)
	}
}

func TestMeta_SensorsAndLaunchConfig(t *testing.T) {
	m := metaSource()
	m.Vars["SENSOR"] = []string{"CTD_TEMP", ""}
	m.Vars["SENSOR_MAKER"] = []string{"SBE", ""}
	m.Vars["LAUNCH_CONFIG_PARAMETER_NAME"] = []string{"CONFIG_ParkPressure_dbar", "CONFIG_Direction"}
	m.Vars["LAUNCH_CONFIG_PARAMETER_VALUE"] = []float64{1000, 2}

	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if len(got.Sensors) != 1 || got.Sensors[0].SensorMaker != "SBE" {
		t.Fatalf("sensors = %#v", got.Sensors)
	}
	if len(got.LaunchConfig) != 2 {
		t.Fatalf("launch config = %d", len(got.LaunchConfig))
	}
	if got.LaunchConfig[0].LaunchConfigParameterValue != "1000" {
		t.Errorf("numeric value rendered as %q", got.LaunchConfig[0].LaunchConfigParameterValue)
	}
}

func TestMeta_ConfigFirstMissionRow(t *testing.T) {
	m := metaSource()
	m.Vars["CONFIG_PARAMETER_NAME"] = []string{"CONFIG_CycleTime_days", "CONFIG_ProfilePressure_dbar"}
	m.Vars["CONFIG_PARAMETER_VALUE"] = [][]float64{{10, 2000}, {99, 99}}
	m.Vars["CONFIG_MISSION_NUMBER"] = []float64{1}
	m.Vars["CONFIG_MISSION_COMMENT"] = []string{"standard mission"}

	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if len(got.Config) != 2 {
		t.Fatalf("config = %d", len(got.Config))
	}
	if got.Config[1].ConfigParameterValue != "2000" {
		t.Errorf("second mission row leaked in: %q", got.Config[1].ConfigParameterValue)
	}
	if got.Config[0].ConfigMissionNumber == nil || *got.Config[0].ConfigMissionNumber != 1 {
		t.Errorf("mission number = %v", got.Config[0].ConfigMissionNumber)
	}
	if got.Config[0].ConfigMissionComment != "standard mission" {
		t.Errorf("mission comment = %q", got.Config[0].ConfigMissionComment)
	}
}

func TestHistoryEntries_SkipsEmptyAndTruncates(t *testing.T) {
	m := metaSource()
	m.Dims["N_HISTORY"] = 3
	m.Vars["HISTORY_INSTITUTION"] = []string{"AO", "", strings.Repeat("x", 150)}
	m.Vars["HISTORY_STEP"] = []string{"ARFM", "", "ARGQ"}
	m.Vars["HISTORY_DATE"] = []string{"20230405060708", "", "20230506070809"}

	got, err := Meta(m)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if len(got.History) != 2 {
		t.Fatalf("history = %d, want empty row skipped", len(got.History))
	}
	if got.History[0].HistoryDate == nil || got.History[0].HistoryDate.Day() != 5 {
		t.Errorf("history date = %v", got.History[0].HistoryDate)
	}
	if len(got.History[1].HistoryInstitution) != 100 {
		t.Errorf("institution not clipped: %d bytes", len(got.History[1].HistoryInstitution))
	}
}

func profileSource() *ncdf.Memory {
	m := ncdf.NewMemory()
	m.Attrs["platform_number"] = "5904471"
	m.Dims["N_PROF"] = 2
	m.Dims["N_LEVELS"] = 3
	m.Vars["PROJECT_NAME"] = []string{"Argo Australia"}
	m.Vars["CYCLE_NUMBER"] = []float64{7, 8}
	m.Vars["JULD"] = []float64{18262.5, 18272.5}
	m.Vars["LATITUDE"] = []float64{-35.2, -35.3}
	m.Vars["LONGITUDE"] = []float64{150.1, 150.2}
	m.Vars["PRES"] = [][]float64{{5.1, 10.2, 99999}, {5.3, 99999, 99999}}
	m.Vars["TEMP"] = [][]float64{{18.5, 18.1, 99999}, {17.9, 99999, 99999}}
	m.Vars["PRES_QC"] = [][]string{{"1", "1", ""}, {"1", "", ""}}
	m.Fills["PRES"] = 99999
	m.Fills["TEMP"] = 99999
	return m
}

func TestProfile_PlatformAndChains(t *testing.T) {
	got, err := Profile(profileSource())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Platform.PlatformNumber != "5904471" {
		t.Fatalf("platform = %q", got.Platform.PlatformNumber)
	}
	if got.Platform.ProjectName != "Argo Australia" {
		t.Errorf("project name = %q, want variable to win", got.Platform.ProjectName)
	}
}

func TestProfile_ProjectNameFallbacks(t *testing.T) {
	m := profileSource()
	delete(m.Vars, "PROJECT_NAME")
	m.Attrs["project_name"] = "Lower Attr Project"
	got, err := Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Platform.ProjectName != "Lower Attr Project" {
		t.Errorf("project name = %q", got.Platform.ProjectName)
	}

	delete(m.Attrs, "project_name")
	got, err = Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Platform.ProjectName != "Unknown Project" {
		t.Errorf("project name = %q, want default", got.Platform.ProjectName)
	}
}

func TestProfile_LongProjectNameClipped(t *testing.T) {
	m := profileSource()
	m.Vars["PROJECT_NAME"] = []string{strings.Repeat("p", 150)}
	got, err := Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	name := got.Platform.ProjectName
	if len(name) != 100 || !strings.HasSuffix(name, "...") {
		t.Errorf("project name not clipped with marker: %d bytes, tail %q", len(name), name[90:])
	}
}

func TestProfile_RowDefaults(t *testing.T) {
	got, err := Profile(profileSource())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(got.Profiles) != 2 {
		t.Fatalf("profiles = %d", len(got.Profiles))
	}
	p := got.Profiles[0]
	if p.Direction != "A" || p.DataMode != "R" || p.PositionQC != "0" || p.JULDQC != "0" {
		t.Errorf("defaults = %q %q %q %q", p.Direction, p.DataMode, p.PositionQC, p.JULDQC)
	}
	if p.CycleNumber == nil || *p.CycleNumber != 7 {
		t.Errorf("cycle = %v", p.CycleNumber)
	}
	if p.JULD == nil || p.JULD.Year() != 2000 {
		t.Errorf("juld = %v", p.JULD)
	}
}

func TestProfile_DepthLevelsDropAllAbsent(t *testing.T) {
	got, err := Profile(profileSource())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(got.Depths) != 2 {
		t.Fatalf("depth batches = %d", len(got.Depths))
	}
	if len(got.Depths[0].Rows) != 2 {
		t.Errorf("profile 0 rows = %d, want fill-only level dropped", len(got.Depths[0].Rows))
	}
	if len(got.Depths[1].Rows) != 1 {
		t.Errorf("profile 1 rows = %d", len(got.Depths[1].Rows))
	}
	row := got.Depths[0].Rows[0]
	if row.Pres == nil || *row.Pres != 5.1 || row.PresQC != "1" {
		t.Errorf("row 0 = pres %v qc %q", row.Pres, row.PresQC)
	}
	if row.TempQC != "0" {
		t.Errorf("missing TEMP_QC should default to 0, got %q", row.TempQC)
	}
	if got.Depths[0].Key != got.Profiles[0].KeyFor() {
		t.Errorf("batch key mismatch")
	}
}

func TestProfile_LevelsFromSecondDimension(t *testing.T) {
	m := profileSource()
	// Real files never declare N_LEVELS as a leading dimension; it is
	// only reachable through the per-level variables' second position.
	delete(m.Dims, "N_LEVELS")
	m.VarDims["PRES"] = []string{"N_PROF", "N_LEVELS"}

	got, err := Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(got.Depths) != 2 {
		t.Fatalf("depth batches = %d, want levels counted from PRES shape", len(got.Depths))
	}
	if len(got.Depths[0].Rows) != 2 || len(got.Depths[1].Rows) != 1 {
		t.Errorf("rows = %d/%d", len(got.Depths[0].Rows), len(got.Depths[1].Rows))
	}
}

func TestProfile_MetadataGate(t *testing.T) {
	m := profileSource()
	delete(m.Vars, "PROJECT_NAME")
	got, err := Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Metadata != nil {
		t.Fatalf("metadata should be nil without meaningful fields")
	}

	m.Attrs["PI_NAME"] = "SUSAN WIJFFELS"
	got, err = Profile(m)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Metadata == nil {
		t.Fatalf("metadata should be present once PI name appears")
	}
	if got.Metadata.PIName != "SUSAN WIJFFELS" {
		t.Errorf("pi name = %q", got.Metadata.PIName)
	}
	if got.Metadata.DataType != "Argo profile" {
		t.Errorf("data type = %q, want default", got.Metadata.DataType)
	}
}

func trajectorySource() *ncdf.Memory {
	m := ncdf.NewMemory()
	m.Attrs["platform_number"] = "2902746"
	m.Dims["N_CYCLE"] = 2
	m.Dims["N_MEASUREMENT"] = 4
	m.Vars["CYCLE_NUMBER_INDEX"] = []float64{3, 4}
	m.Vars["JULD_ASCENT_END"] = []float64{18262.25, 18272.25}
	m.Vars["GROUNDED"] = []string{"N", ""}
	m.Vars["CYCLE_NUMBER"] = []float64{3, 3, 4, 3}
	m.Vars["MEASUREMENT_CODE"] = []float64{703, 703, 704, 99999}
	m.Vars["JULD"] = []float64{18262.5, 18262.5, 18272.5, 99999}
	m.Vars["LATITUDE"] = []float64{12.5, 12.5, 12.7, 99999}
	m.Vars["LONGITUDE"] = []float64{68.1, 68.1, 68.3, 99999}
	m.Fills["MEASUREMENT_CODE"] = 99999
	m.Fills["JULD"] = 99999
	m.Fills["LATITUDE"] = 99999
	m.Fills["LONGITUDE"] = 99999
	return m
}

func TestTrajectory_CycleSummaries(t *testing.T) {
	got, err := Trajectory(trajectorySource())
	if err != nil {
		t.Fatalf("Trajectory: %v", err)
	}
	if len(got.Cycles) != 2 {
		t.Fatalf("cycles = %d", len(got.Cycles))
	}
	c := got.Cycles[0]
	if c.CycleNumber == nil || *c.CycleNumber != 3 {
		t.Errorf("cycle number = %v", c.CycleNumber)
	}
	if c.JULDAscentEnd == nil {
		t.Errorf("ascent end missing")
	}
	if c.PositioningSystem != "ARGOS" {
		t.Errorf("positioning = %q, want default", c.PositioningSystem)
	}
	if c.DataMode != "R" || c.Grounded != "N" {
		t.Errorf("data mode %q grounded %q", c.DataMode, c.Grounded)
	}
	if got.Cycles[1].Grounded != "U" {
		t.Errorf("empty grounded should default to U, got %q", got.Cycles[1].Grounded)
	}
}

func TestTrajectory_CycleNumberFallsBackToIndex(t *testing.T) {
	m := trajectorySource()
	delete(m.Vars, "CYCLE_NUMBER_INDEX")
	got, err := Trajectory(m)
	if err != nil {
		t.Fatalf("Trajectory: %v", err)
	}
	if got.Cycles[1].CycleNumber == nil || *got.Cycles[1].CycleNumber != 1 {
		t.Errorf("cycle number = %v, want index", got.Cycles[1].CycleNumber)
	}
}

func TestTrajectory_MeasurementFilterAndDedupe(t *testing.T) {
	got, err := Trajectory(trajectorySource())
	if err != nil {
		t.Fatalf("Trajectory: %v", err)
	}
	// Four raw rows: one pair of duplicates, one distinct, one all-fill.
	if len(got.Measurements) != 2 {
		t.Fatalf("measurements = %d, want duplicate and empty rows gone", len(got.Measurements))
	}
	m := got.Measurements[0]
	if m.MeasurementIndex != 0 {
		t.Errorf("first occurrence should survive dedupe, index = %d", m.MeasurementIndex)
	}
	if m.JULDStatus != "9" || m.PositionQC != "0" {
		t.Errorf("status defaults = %q %q", m.JULDStatus, m.PositionQC)
	}
	if m.TrajectoryID != 0 {
		t.Errorf("trajectory id must be unset before persistence")
	}
}
