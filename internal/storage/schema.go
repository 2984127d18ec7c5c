package storage

import "argoetl/internal/model"

// Destination table names. The schema is an external contract shared
// with downstream consumers; names are fixed here and nowhere else.
const (
	TablePlatform        = "float_table"
	TableMetadata        = "meta_table"
	TableProfile         = "profile_table"
	TableDepth           = "depth_measurements_table"
	TableTrajectory      = "trajectory_table"
	TableTrajectoryDepth = "trajectory_depth_table"
	TableParameter       = "parameter_table"
	TableSensor          = "sensor_table"
	TableConfig          = "config_table"
	TableLaunchConfig    = "launch_config_table"
	TableHistory         = "history_table"
)

// Column lists and row flatteners live here so every backend builds its
// SQL against the same ordering. A flattener and its column list must
// stay index-aligned; the builder tests pin that.

// nullIfEmpty maps an absent status or QC flag to SQL NULL. These are
// CHAR(1) columns whose empty string has no meaning in the Argo flag
// vocabulary.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var PlatformColumns = []string{
	"platform_number", "project_name", "wmo_inst_type", "positioning_system",
}

func PlatformRow(p model.Platform) []any {
	return []any{p.PlatformNumber, p.ProjectName, p.WMOInstType, p.PositioningSystem}
}

var MetadataColumns = []string{
	"platform_number", "data_type", "format_version", "handbook_version",
	"date_creation", "date_update", "ptt", "trans_system", "trans_system_id",
	"trans_frequency", "positioning_system", "platform_family", "platform_type",
	"platform_maker", "firmware_version", "manual_version", "float_serial_no",
	"dac_format_id", "wmo_inst_type", "project_name", "data_centre", "pi_name",
	"anomaly", "battery_type", "battery_packs", "controller_board_type_primary",
	"controller_board_type_secondary", "serial_no_primary", "serial_no_secondary",
	"special_features", "float_owner", "operating_institution", "customisation",
	"launch_date", "launch_latitude", "launch_longitude", "launch_qc",
	"start_date", "start_date_qc", "startup_date", "startup_date_qc",
	"end_mission_date", "end_mission_status",
}

func MetadataRow(m model.PlatformMetadata) []any {
	return []any{
		m.PlatformNumber, m.DataType, m.FormatVersion, m.HandbookVersion,
		m.DateCreation, m.DateUpdate, m.PTT, m.TransSystem, m.TransSystemID,
		m.TransFrequency, m.PositioningSystem, m.PlatformFamily, m.PlatformType,
		m.PlatformMaker, m.FirmwareVersion, m.ManualVersion, m.FloatSerialNo,
		m.DACFormatID, m.WMOInstType, m.ProjectName, m.DataCentre, m.PIName,
		m.Anomaly, m.BatteryType, m.BatteryPacks, m.ControllerBoardTypePrimary,
		m.ControllerBoardTypeSecondary, m.SerialNoPrimary, m.SerialNoSecondary,
		m.SpecialFeatures, m.FloatOwner, m.OperatingInstitution, m.Customisation,
		m.LaunchDate, m.LaunchLatitude, m.LaunchLongitude, m.LaunchQC,
		m.StartDate, m.StartDateQC, m.StartupDate, m.StartupDateQC,
		m.EndMissionDate, m.EndMissionStatus,
	}
}

var ProfileColumns = []string{
	"platform_number", "cycle_number", "juld", "juld_qc", "latitude", "longitude",
	"position_qc", "direction", "data_mode", "vertical_sampling_scheme",
	"config_mission_number", "profile_pres_qc", "profile_temp_qc", "profile_psal_qc",
}

func ProfileRow(p model.Profile) []any {
	return []any{
		p.PlatformNumber, p.CycleNumber, p.JULD, p.JULDQC, p.Latitude, p.Longitude,
		p.PositionQC, p.Direction, p.DataMode, p.VerticalSamplingScheme,
		p.ConfigMissionNumber,
		nullIfEmpty(p.ProfilePresQC), nullIfEmpty(p.ProfileTempQC), nullIfEmpty(p.ProfilePsalQC),
	}
}

var DepthColumns = []string{
	"profile_id", "platform_number", "cycle_number", "latitude", "longitude",
	"pres", "temp", "psal", "pres_qc", "temp_qc", "psal_qc",
	"pres_adjusted", "temp_adjusted", "psal_adjusted",
	"pres_adjusted_qc", "temp_adjusted_qc", "psal_adjusted_qc",
	"pres_adjusted_error", "temp_adjusted_error", "psal_adjusted_error",
	"doxy", "doxy_qc", "doxy_adjusted", "doxy_adjusted_qc", "doxy_adjusted_error",
	"nitrate", "nitrate_qc", "nitrate_adjusted", "nitrate_adjusted_qc", "nitrate_adjusted_error",
	"ph_in_situ_total", "ph_in_situ_total_qc", "ph_in_situ_total_adjusted",
	"ph_in_situ_total_adjusted_qc", "ph_in_situ_total_adjusted_error",
}

func DepthRow(m model.DepthMeasurement) []any {
	return []any{
		m.ProfileID, m.PlatformNumber, m.CycleNumber, m.Latitude, m.Longitude,
		m.Pres, m.Temp, m.Psal, m.PresQC, m.TempQC, m.PsalQC,
		m.PresAdjusted, m.TempAdjusted, m.PsalAdjusted,
		m.PresAdjustedQC, m.TempAdjustedQC, m.PsalAdjustedQC,
		m.PresAdjustedError, m.TempAdjustedError, m.PsalAdjustedError,
		m.Doxy, m.DoxyQC, m.DoxyAdjusted, m.DoxyAdjustedQC, m.DoxyAdjustedError,
		m.Nitrate, m.NitrateQC, m.NitrateAdjusted, m.NitrateAdjustedQC, m.NitrateAdjustedError,
		m.PhInSituTotal, m.PhInSituTotalQC, m.PhInSituTotalAdjusted,
		m.PhInSituTotalAdjustedQC, m.PhInSituTotalAdjustedError,
	}
}

var TrajectoryColumns = []string{
	"platform_number", "cycle_number",
	"juld_first_location", "juld_last_location", "juld_first_message", "juld_last_message",
	"juld_ascent_start", "juld_ascent_end", "juld_descent_start", "juld_descent_end",
	"juld_park_start", "juld_park_end", "juld_transmission_start", "juld_transmission_end",
	"first_latitude", "first_longitude", "last_latitude", "last_longitude",
	"positioning_system", "data_mode", "config_mission_number", "grounded",
	"representative_park_pressure", "representative_park_pressure_status",
	"cycle_number_adjusted",
	"juld_first_location_status", "juld_last_location_status",
	"juld_first_message_status", "juld_last_message_status",
}

func TrajectoryRow(c model.TrajectoryCycle) []any {
	return []any{
		c.PlatformNumber, c.CycleNumber,
		c.JULDFirstLocation, c.JULDLastLocation, c.JULDFirstMessage, c.JULDLastMessage,
		c.JULDAscentStart, c.JULDAscentEnd, c.JULDDescentStart, c.JULDDescentEnd,
		c.JULDParkStart, c.JULDParkEnd, c.JULDTransmissionStart, c.JULDTransmissionEnd,
		c.FirstLatitude, c.FirstLongitude, c.LastLatitude, c.LastLongitude,
		c.PositioningSystem, c.DataMode, c.ConfigMissionNumber, c.Grounded,
		c.RepresentativeParkPressure, nullIfEmpty(c.RepresentativeParkPressureStatus),
		c.CycleNumberAdjusted,
		nullIfEmpty(c.JULDFirstLocationStatus), nullIfEmpty(c.JULDLastLocationStatus),
		nullIfEmpty(c.JULDFirstMessageStatus), nullIfEmpty(c.JULDLastMessageStatus),
	}
}

var TrajectoryDepthColumns = []string{
	"trajectory_id", "platform_number", "cycle_number",
	"measurement_code", "measurement_index",
	"latitude", "longitude", "juld", "juld_status", "juld_adjusted", "juld_adjusted_qc", "juld_adjusted_status",
	"position_accuracy", "axes_error_ellipse_major", "axes_error_ellipse_minor", "axes_error_ellipse_angle",
	"satellite_name", "positioning_system", "position_qc",
	"pres", "pres_qc", "pres_adjusted", "pres_adjusted_qc", "pres_adjusted_error",
	"temp", "temp_qc", "temp_adjusted", "temp_adjusted_qc", "temp_adjusted_error",
	"psal", "psal_qc", "psal_adjusted", "psal_adjusted_qc", "psal_adjusted_error",
}

// TrajectoryDepthConflictColumns is the composite key that makes
// reprocessing a trajectory file a no-op for rows already present.
var TrajectoryDepthConflictColumns = []string{
	"platform_number", "cycle_number", "measurement_code", "juld",
}

func TrajectoryDepthRow(m model.TrajectoryMeasurement) []any {
	return []any{
		m.TrajectoryID, m.PlatformNumber, m.CycleNumber,
		m.MeasurementCode, m.MeasurementIndex,
		m.Latitude, m.Longitude, m.JULD, m.JULDStatus, m.JULDAdjusted, m.JULDAdjustedQC, m.JULDAdjustedStatus,
		nullIfEmpty(m.PositionAccuracy), m.AxesErrorEllipseMajor, m.AxesErrorEllipseMinor, m.AxesErrorEllipseAngle,
		m.SatelliteName, m.PositioningSystem, m.PositionQC,
		m.Pres, m.PresQC, m.PresAdjusted, m.PresAdjustedQC, m.PresAdjustedError,
		m.Temp, m.TempQC, m.TempAdjusted, m.TempAdjustedQC, m.TempAdjustedError,
		m.Psal, m.PsalQC, m.PsalAdjusted, m.PsalAdjustedQC, m.PsalAdjustedError,
	}
}

var ParameterColumns = []string{
	"platform_number", "parameter", "parameter_sensor", "parameter_units",
	"parameter_accuracy", "parameter_resolution", "predeployment_calib_equation",
	"coefficient", "comment",
}

func ParameterRow(p model.Parameter) []any {
	return []any{
		p.PlatformNumber, p.Parameter, p.ParameterSensor, p.ParameterUnits,
		p.ParameterAccuracy, p.ParameterResolution, p.PredeploymentCalibEquation,
		p.Coefficient, p.Comment,
	}
}

var SensorColumns = []string{
	"platform_number", "sensor", "sensor_maker", "sensor_model", "sensor_serial_no",
}

func SensorRow(s model.Sensor) []any {
	return []any{s.PlatformNumber, s.Sensor, s.SensorMaker, s.SensorModel, s.SensorSerialNo}
}

var ConfigColumns = []string{
	"platform_number", "config_parameter_name", "config_parameter_value",
	"config_mission_number", "config_mission_comment",
}

func ConfigRow(c model.ConfigEntry) []any {
	return []any{
		c.PlatformNumber, c.ConfigParameterName, c.ConfigParameterValue,
		c.ConfigMissionNumber, c.ConfigMissionComment,
	}
}

var LaunchConfigColumns = []string{
	"platform_number", "launch_config_parameter_name", "launch_config_parameter_value",
}

func LaunchConfigRow(c model.LaunchConfigEntry) []any {
	return []any{c.PlatformNumber, c.LaunchConfigParameterName, c.LaunchConfigParameterValue}
}

var HistoryColumns = []string{
	"platform_number", "cycle_number", "history_institution", "history_step",
	"history_software", "history_software_release", "history_reference", "history_date",
	"history_action", "history_parameter", "history_start_pres", "history_stop_pres",
	"history_previous_value", "history_qctest",
}

// HistoryConflictColumns is the compound natural key of history_table.
var HistoryConflictColumns = []string{
	"platform_number", "history_institution", "history_step", "history_date", "history_action",
}

func HistoryRow(h model.HistoryEntry) []any {
	return []any{
		h.PlatformNumber, h.CycleNumber, h.HistoryInstitution, h.HistoryStep,
		h.HistorySoftware, h.HistorySoftwareRelease, h.HistoryReference, h.HistoryDate,
		h.HistoryAction, h.HistoryParameter, h.HistoryStartPres, h.HistoryStopPres,
		h.HistoryPreviousValue, h.HistoryQCTest,
	}
}
