package assemble

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"argoetl/internal/model"
	"argoetl/internal/resolve"
)

// MetaData is everything a metadata-shape file contributes: the
// float_table row, the full meta_table row, and the per-platform
// entity tables hanging off them.
type MetaData struct {
	PlatformNumber string
	Platform       model.Platform
	Metadata       model.PlatformMetadata
	Parameters     []model.Parameter
	Sensors        []model.Sensor
	LaunchConfig   []model.LaunchConfigEntry
	Config         []model.ConfigEntry
	History        []model.HistoryEntry
}

// Meta assembles a metadata-shape file. Metadata fields live in scalar
// variables here, not global attributes; the transmission block is the
// exception and reads element zero of small array variables.
func Meta(src resolve.Source) (*MetaData, error) {
	platform := strings.TrimSpace(resolve.Text(src, "PLATFORM_NUMBER", "", 0))
	if platform == "" {
		return nil, fmt.Errorf("assemble: metadata file has no platform number")
	}

	md := metaFromVariables(src, platform)
	out := &MetaData{
		PlatformNumber: platform,
		Platform:       platformRecord(platform, md.ProjectName, md.WMOInstType, md.PositioningSystem),
		Metadata:       md,
		Parameters:     metaParameters(src, platform),
		Sensors:        metaSensors(src, platform),
		LaunchConfig:   metaLaunchConfig(src, platform),
		Config:         metaConfig(src, platform),
		History:        historyEntries(src, platform),
	}
	return out, nil
}

func metaFromVariables(src resolve.Source, platform string) model.PlatformMetadata {
	scalar := func(name string) string {
		s, ok := src.VarText(name, 0)
		if !ok {
			return ""
		}
		return s
	}
	date := func(name string) *time.Time { return resolve.ArgoDate(scalar(name)) }

	return model.PlatformMetadata{
		PlatformNumber: platform,

		DataType:        textOr(scalar("DATA_TYPE"), "Argo meta"),
		FormatVersion:   scalar("FORMAT_VERSION"),
		HandbookVersion: scalar("HANDBOOK_VERSION"),
		DateCreation:    date("DATE_CREATION"),
		DateUpdate:      date("DATE_UPDATE"),

		PTT:            scalar("PTT"),
		TransSystem:    scalar("TRANS_SYSTEM"),
		TransSystemID:  scalar("TRANS_SYSTEM_ID"),
		TransFrequency: scalar("TRANS_FREQUENCY"),

		PositioningSystem: scalar("POSITIONING_SYSTEM"),
		PlatformFamily:    scalar("PLATFORM_FAMILY"),
		PlatformType:      scalar("PLATFORM_TYPE"),
		PlatformMaker:     scalar("PLATFORM_MAKER"),
		FirmwareVersion:   scalar("FIRMWARE_VERSION"),
		ManualVersion:     scalar("MANUAL_VERSION"),
		FloatSerialNo:     scalar("FLOAT_SERIAL_NO"),
		DACFormatID:       scalar("DAC_FORMAT_ID"),

		WMOInstType: scalar("WMO_INST_TYPE"),
		ProjectName: scalar("PROJECT_NAME"),
		DataCentre:  scalar("DATA_CENTRE"),
		PIName:      scalar("PI_NAME"),

		Anomaly:      scalar("ANOMALY"),
		BatteryType:  scalar("BATTERY_TYPE"),
		BatteryPacks: resolve.BatteryPacks(scalar("BATTERY_PACKS")),

		ControllerBoardTypePrimary:   scalar("CONTROLLER_BOARD_TYPE_PRIMARY"),
		ControllerBoardTypeSecondary: scalar("CONTROLLER_BOARD_TYPE_SECONDARY"),
		SerialNoPrimary:              scalar("CONTROLLER_BOARD_SERIAL_NO_PRIMARY"),
		SerialNoSecondary:            scalar("CONTROLLER_BOARD_SERIAL_NO_SECONDARY"),
		SpecialFeatures:              scalar("SPECIAL_FEATURES"),
		FloatOwner:                   scalar("FLOAT_OWNER"),
		OperatingInstitution:         scalar("OPERATING_INSTITUTION"),
		Customisation:                scalar("CUSTOMISATION"),

		LaunchDate:      date("LAUNCH_DATE"),
		LaunchLatitude:  resolve.Float(src, "LAUNCH_LATITUDE", 0),
		LaunchLongitude: resolve.Float(src, "LAUNCH_LONGITUDE", 0),
		LaunchQC:        resolve.Truncate(scalar("LAUNCH_QC"), 1),

		StartDate:     date("START_DATE"),
		StartDateQC:   resolve.Truncate(scalar("START_DATE_QC"), 1),
		StartupDate:   date("STARTUP_DATE"),
		StartupDateQC: resolve.Truncate(scalar("STARTUP_DATE_QC"), 1),

		EndMissionDate:   date("END_MISSION_DATE"),
		EndMissionStatus: resolve.Truncate(scalar("END_MISSION_STATUS"), 1),
	}
}

func metaParameters(src resolve.Source, platform string) []model.Parameter {
	n := src.VarLen("PARAMETER")
	out := make([]model.Parameter, 0, n)
	for i := 0; i < n; i++ {
		name, _ := src.VarText("PARAMETER", i)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.Parameter{
			PlatformNumber:             platform,
			Parameter:                  name,
			ParameterSensor:            varAt(src, "PARAMETER_SENSOR", i),
			ParameterUnits:             varAt(src, "PARAMETER_UNITS", i),
			ParameterAccuracy:          varAt(src, "PARAMETER_ACCURACY", i),
			ParameterResolution:        varAt(src, "PARAMETER_RESOLUTION", i),
			PredeploymentCalibEquation: varAt(src, "PREDEPLOYMENT_CALIB_EQUATION", i),
			Coefficient:                coefficient(varAt(src, "PREDEPLOYMENT_CALIB_COEFFICIENT", i)),
			Comment:                    varAt(src, "PREDEPLOYMENT_CALIB_COMMENT", i),
		})
	}
	return out
}

// coefficient keeps calibration coefficients NULL unless the file holds
// something beyond a not-applicable marker.
func coefficient(s string) *string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n/a", "none", "null":
		return nil
	}
	return &s
}

func metaSensors(src resolve.Source, platform string) []model.Sensor {
	n := src.VarLen("SENSOR")
	out := make([]model.Sensor, 0, n)
	for i := 0; i < n; i++ {
		name, _ := src.VarText("SENSOR", i)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.Sensor{
			PlatformNumber: platform,
			Sensor:         name,
			SensorMaker:    varAt(src, "SENSOR_MAKER", i),
			SensorModel:    varAt(src, "SENSOR_MODEL", i),
			SensorSerialNo: varAt(src, "SENSOR_SERIAL_NO", i),
		})
	}
	return out
}

func metaLaunchConfig(src resolve.Source, platform string) []model.LaunchConfigEntry {
	n := src.VarLen("LAUNCH_CONFIG_PARAMETER_NAME")
	if m := src.VarLen("LAUNCH_CONFIG_PARAMETER_VALUE"); m < n {
		n = m
	}
	out := make([]model.LaunchConfigEntry, 0, n)
	for i := 0; i < n; i++ {
		name, _ := src.VarText("LAUNCH_CONFIG_PARAMETER_NAME", i)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.LaunchConfigEntry{
			PlatformNumber:             platform,
			LaunchConfigParameterName:  name,
			LaunchConfigParameterValue: launchValue(src, i),
		})
	}
	return out
}

// launchValue renders a launch config value as text whether the file
// stores it as character data or as a number.
func launchValue(src resolve.Source, i int) string {
	if s, ok := src.VarText("LAUNCH_CONFIG_PARAMETER_VALUE", i); ok {
		return s
	}
	if f, ok := src.VarFloat("LAUNCH_CONFIG_PARAMETER_VALUE", i); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

func metaConfig(src resolve.Source, platform string) []model.ConfigEntry {
	n := src.VarLen("CONFIG_PARAMETER_NAME")
	if n == 0 || !src.HasVar("CONFIG_PARAMETER_VALUE") {
		return nil
	}

	// The mission columns are per file, not per parameter.
	missionNumber := resolve.Int(src, "CONFIG_MISSION_NUMBER", 0)
	missionComment := varAt(src, "CONFIG_MISSION_COMMENT", 0)

	out := make([]model.ConfigEntry, 0, n)
	for i := 0; i < n; i++ {
		name, _ := src.VarText("CONFIG_PARAMETER_NAME", i)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.ConfigEntry{
			PlatformNumber:       platform,
			ConfigParameterName:  name,
			ConfigParameterValue: configValue(src, i),
			ConfigMissionNumber:  missionNumber,
			ConfigMissionComment: missionComment,
		})
	}
	return out
}

// configValue reads CONFIG_PARAMETER_VALUE, which is two-dimensional
// (N_MISSIONS x N_CONFIG_PARAM); only the first mission row is kept.
func configValue(src resolve.Source, i int) string {
	if s, ok := src.VarText("CONFIG_PARAMETER_VALUE", 0, i); ok {
		return s
	}
	if f, ok := src.VarFloat("CONFIG_PARAMETER_VALUE", 0, i); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if s, ok := src.VarText("CONFIG_PARAMETER_VALUE", i); ok {
		return s
	}
	if f, ok := src.VarFloat("CONFIG_PARAMETER_VALUE", i); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

func varAt(src resolve.Source, name string, idx ...int) string {
	s, ok := src.VarText(name, idx...)
	if !ok {
		return ""
	}
	return s
}

func textOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
