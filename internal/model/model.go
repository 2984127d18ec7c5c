// Package model defines the relational records the ingestion pipeline
// produces and the per-file result contract handed back to callers.
//
// Field names mirror the destination column names. Nullable columns are
// pointer-typed; a nil pointer is written as SQL NULL.
package model

import (
	"strconv"
	"time"
)

// FileKind classifies an input file by the shape of data it carries.
type FileKind string

const (
	KindMeta       FileKind = "meta"
	KindProfile    FileKind = "profile"
	KindTrajectory FileKind = "trajectory"
	KindUnknown    FileKind = "unknown"
)

// Platform is one row of float_table. Every other table hangs off
// PlatformNumber.
type Platform struct {
	PlatformNumber    string
	ProjectName       string
	WMOInstType       string
	PositioningSystem string
}

// PlatformMetadata is one row of meta_table.
type PlatformMetadata struct {
	PlatformNumber string

	DataType        string
	FormatVersion   string
	HandbookVersion string
	DateCreation    *time.Time
	DateUpdate      *time.Time

	PTT            string
	TransSystem    string
	TransSystemID  string
	TransFrequency string

	PositioningSystem string
	PlatformFamily    string
	PlatformType      string
	PlatformMaker     string
	FirmwareVersion   string
	ManualVersion     string
	FloatSerialNo     string
	DACFormatID       string

	WMOInstType string
	ProjectName string
	DataCentre  string
	PIName      string

	Anomaly                      string
	BatteryType                  string
	BatteryPacks                 *int64
	ControllerBoardTypePrimary   string
	ControllerBoardTypeSecondary string
	SerialNoPrimary              string
	SerialNoSecondary            string
	SpecialFeatures              string
	FloatOwner                   string
	OperatingInstitution         string
	Customisation                string

	LaunchDate      *time.Time
	LaunchLatitude  *float64
	LaunchLongitude *float64
	LaunchQC        string

	StartDate     *time.Time
	StartDateQC   string
	StartupDate   *time.Time
	StartupDateQC string

	EndMissionDate   *time.Time
	EndMissionStatus string
}

// Profile is one row of profile_table. The natural key is
// (platform_number, cycle_number, direction); profile_id is assigned by
// the store on insert.
type Profile struct {
	PlatformNumber         string
	CycleNumber            *int64
	JULD                   *time.Time
	JULDQC                 string
	Latitude               *float64
	Longitude              *float64
	PositionQC             string
	Direction              string
	DataMode               string
	VerticalSamplingScheme string
	ConfigMissionNumber    *int64
	ProfilePresQC          string
	ProfileTempQC          string
	ProfilePsalQC          string
}

// ProfileKey identifies a profile within one ingestion run. JULDUnix is
// the profile timestamp as unix seconds, or 0 when the timestamp is
// absent, so the key stays comparable.
type ProfileKey struct {
	PlatformNumber string
	CycleNumber    int64
	JULDUnix       int64
}

// KeyFor builds the lookup key used to thread profile_id into depth rows.
func (p *Profile) KeyFor() ProfileKey {
	k := ProfileKey{PlatformNumber: p.PlatformNumber}
	if p.CycleNumber != nil {
		k.CycleNumber = *p.CycleNumber
	}
	if p.JULD != nil {
		k.JULDUnix = p.JULD.Unix()
	}
	return k
}

// DepthMeasurement is one row of depth_measurements_table. ProfileID is
// stamped by the assembler after profiles are persisted; rows that never
// receive a profile id are dropped before insert.
type DepthMeasurement struct {
	ProfileID      int64
	PlatformNumber string
	CycleNumber    *int64
	Latitude       *float64
	Longitude      *float64

	Pres *float64
	Temp *float64
	Psal *float64

	PresQC string
	TempQC string
	PsalQC string

	PresAdjusted *float64
	TempAdjusted *float64
	PsalAdjusted *float64

	PresAdjustedQC string
	TempAdjustedQC string
	PsalAdjustedQC string

	PresAdjustedError *float64
	TempAdjustedError *float64
	PsalAdjustedError *float64

	Doxy              *float64
	DoxyQC            string
	DoxyAdjusted      *float64
	DoxyAdjustedQC    string
	DoxyAdjustedError *float64

	Nitrate              *float64
	NitrateQC            string
	NitrateAdjusted      *float64
	NitrateAdjustedQC    string
	NitrateAdjustedError *float64

	PhInSituTotal              *float64
	PhInSituTotalQC            string
	PhInSituTotalAdjusted      *float64
	PhInSituTotalAdjustedQC    string
	PhInSituTotalAdjustedError *float64
}

// TrajectoryCycle is one row of trajectory_table, summarizing a single
// float cycle. trajectory_id is assigned by the store.
type TrajectoryCycle struct {
	PlatformNumber string
	CycleNumber    *int64

	JULDFirstLocation     *time.Time
	JULDLastLocation      *time.Time
	JULDFirstMessage      *time.Time
	JULDLastMessage       *time.Time
	JULDAscentStart       *time.Time
	JULDAscentEnd         *time.Time
	JULDDescentStart      *time.Time
	JULDDescentEnd        *time.Time
	JULDParkStart         *time.Time
	JULDParkEnd           *time.Time
	JULDTransmissionStart *time.Time
	JULDTransmissionEnd   *time.Time

	FirstLatitude  *float64
	FirstLongitude *float64
	LastLatitude   *float64
	LastLongitude  *float64

	PositioningSystem   string
	DataMode            string
	ConfigMissionNumber *int64
	Grounded            string

	RepresentativeParkPressure       *float64
	RepresentativeParkPressureStatus string

	CycleNumberAdjusted *int64

	JULDFirstLocationStatus string
	JULDLastLocationStatus  string
	JULDFirstMessageStatus  string
	JULDLastMessageStatus   string
}

// TrajectoryMeasurement is one row of trajectory_depth_table.
// TrajectoryID is stamped by the assembler once cycle summaries are
// persisted; rows whose cycle has no summary are dropped.
type TrajectoryMeasurement struct {
	TrajectoryID     int64
	PlatformNumber   string
	CycleNumber      *int64
	MeasurementCode  *int64
	MeasurementIndex int64

	Latitude  *float64
	Longitude *float64

	JULD               *time.Time
	JULDStatus         string
	JULDAdjusted       *time.Time
	JULDAdjustedQC     string
	JULDAdjustedStatus string

	PositionAccuracy      string
	AxesErrorEllipseMajor *float64
	AxesErrorEllipseMinor *float64
	AxesErrorEllipseAngle *float64
	SatelliteName         string
	PositioningSystem     string
	PositionQC            string

	Pres              *float64
	PresQC            string
	PresAdjusted      *float64
	PresAdjustedQC    string
	PresAdjustedError *float64

	Temp              *float64
	TempQC            string
	TempAdjusted      *float64
	TempAdjustedQC    string
	TempAdjustedError *float64

	Psal              *float64
	PsalQC            string
	PsalAdjusted      *float64
	PsalAdjustedQC    string
	PsalAdjustedError *float64
}

// DedupeKey identifies a trajectory measurement within one batch. Rows
// sharing a key collapse to the first occurrence before insert.
func (m *TrajectoryMeasurement) DedupeKey() string {
	k := m.PlatformNumber + "|"
	if m.CycleNumber != nil {
		k += strconv.FormatInt(*m.CycleNumber, 10)
	}
	k += "|"
	if m.MeasurementCode != nil {
		k += strconv.FormatInt(*m.MeasurementCode, 10)
	}
	k += "|"
	if m.JULD != nil {
		k += m.JULD.UTC().Format(time.RFC3339)
	}
	return k
}

// Parameter is one row of parameter_table.
type Parameter struct {
	PlatformNumber             string
	Parameter                  string
	ParameterSensor            string
	ParameterUnits             string
	ParameterAccuracy          string
	ParameterResolution        string
	PredeploymentCalibEquation string
	Coefficient                *string
	Comment                    string
}

// Sensor is one row of sensor_table.
type Sensor struct {
	PlatformNumber string
	Sensor         string
	SensorMaker    string
	SensorModel    string
	SensorSerialNo string
}

// ConfigEntry is one row of config_table.
type ConfigEntry struct {
	PlatformNumber       string
	ConfigParameterName  string
	ConfigParameterValue string
	ConfigMissionNumber  *int64
	ConfigMissionComment string
}

// LaunchConfigEntry is one row of launch_config_table.
type LaunchConfigEntry struct {
	PlatformNumber            string
	LaunchConfigParameterName string
	LaunchConfigParameterValue string
}

// HistoryEntry is one row of history_table.
type HistoryEntry struct {
	PlatformNumber         string
	CycleNumber            *int64
	HistoryInstitution     string
	HistoryStep            string
	HistorySoftware        string
	HistorySoftwareRelease string
	HistoryReference       string
	HistoryDate            *time.Time
	HistoryAction          string
	HistoryParameter       string
	HistoryStartPres       *float64
	HistoryStopPres        *float64
	HistoryPreviousValue   string
	HistoryQCTest          string
}

// Result is the sole per-file handoff to callers. Err is non-nil exactly
// when OK is false.
type Result struct {
	OK        bool
	Err       error
	File      string
	Kind      FileKind
	RowCounts map[string]int
}
