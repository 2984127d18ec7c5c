package assemble

import (
	"fmt"
	"strings"
	"time"

	"argoetl/internal/model"
	"argoetl/internal/resolve"
)

// ProfileData is everything a profile-shape file contributes.
//
// Metadata is a fallback meta_table row assembled from global
// attributes. It is nil when the attributes hold nothing meaningful;
// when non-nil, the processor writes it only if the platform has no
// meta_table row yet, so a real metadata file always wins.
type ProfileData struct {
	Platform model.Platform
	Metadata *model.PlatformMetadata
	Profiles []model.Profile
	Depths   []DepthBatch
}

// DepthBatch groups the depth rows of one profile under the key the
// store's profile-id map is indexed by. The processor stamps ProfileID
// into the rows once profiles are persisted; batches whose key resolves
// to no profile are dropped.
type DepthBatch struct {
	Key  model.ProfileKey
	Rows []model.DepthMeasurement
}

// Profile assembles a profile-shape file.
func Profile(src resolve.Source) (*ProfileData, error) {
	platform := platformNumber(src)
	if platform == "" {
		return nil, fmt.Errorf("assemble: profile file has no platform number")
	}

	record := platformRecord(platform,
		resolve.Text(src, "PROJECT_NAME", "", 0),
		resolve.Text(src, "WMO_INST_TYPE", "", 0),
		resolve.Text(src, "POSITIONING_SYSTEM", "", 0))

	out := &ProfileData{
		Platform: record,
		Metadata: metaFromAttributes(src, platform, record.ProjectName, record.WMOInstType, record.PositioningSystem),
	}

	nProf := src.DimLen("N_PROF")
	if nProf == 0 {
		nProf = 1
	}
	for i := 0; i < nProf; i++ {
		out.Profiles = append(out.Profiles, assembleProfile(src, platform, i))
	}

	nLevels := src.DimLen("N_LEVELS")
	for i := 0; i < nProf && nLevels > 0; i++ {
		batch := depthBatch(src, &out.Profiles[i], nLevels, i)
		if len(batch.Rows) > 0 {
			out.Depths = append(out.Depths, batch)
		}
	}
	return out, nil
}

// platformRecord normalises the float_table fields every file shape
// can contribute. The project name is never left empty; the database
// column is NOT NULL and downstream reports group on it.
func platformRecord(platform, projectName, wmoInstType, positioning string) model.Platform {
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		projectName = "Unknown Project"
	}
	return model.Platform{
		PlatformNumber:    platform,
		ProjectName:       resolve.TruncateEllipsis(projectName, 100),
		WMOInstType:       resolve.Truncate(strings.TrimSpace(wmoInstType), 10),
		PositioningSystem: resolve.Truncate(strings.TrimSpace(positioning), 50),
	}
}

// platformNumber prefers the lower-case global attribute some data
// centres write and falls back to the PLATFORM_NUMBER variable.
func platformNumber(src resolve.Source) string {
	if s, ok := src.AttrText("platform_number"); ok {
		return strings.TrimSpace(s)
	}
	s, _ := src.VarText("PLATFORM_NUMBER", 0)
	return strings.TrimSpace(s)
}

func assembleProfile(src resolve.Source, platform string, i int) model.Profile {
	return model.Profile{
		PlatformNumber:         platform,
		CycleNumber:            resolve.Int(src, "CYCLE_NUMBER", i),
		JULD:                   resolve.JulianVar(src, "JULD", i),
		JULDQC:                 resolve.QC(src, "JULD_QC", "0", i),
		Latitude:               resolve.Float(src, "LATITUDE", i),
		Longitude:              resolve.Float(src, "LONGITUDE", i),
		PositionQC:             resolve.QC(src, "POSITION_QC", "0", i),
		Direction:              resolve.Truncate(varOr(src, "DIRECTION", "A", i), 1),
		DataMode:               resolve.Truncate(varOr(src, "DATA_MODE", "R", i), 1),
		VerticalSamplingScheme: varAt(src, "VERTICAL_SAMPLING_SCHEME", i),
		ConfigMissionNumber:    resolve.Int(src, "CONFIG_MISSION_NUMBER", i),
		ProfilePresQC:          resolve.QC(src, "PROFILE_PRES_QC", "", i),
		ProfileTempQC:          resolve.QC(src, "PROFILE_TEMP_QC", "", i),
		ProfilePsalQC:          resolve.QC(src, "PROFILE_PSAL_QC", "", i),
	}
}

// depthBatch assembles the per-level rows of profile i. A level with no
// pressure, temperature, or salinity carries no data worth a row and is
// dropped.
func depthBatch(src resolve.Source, p *model.Profile, nLevels, i int) DepthBatch {
	batch := DepthBatch{Key: p.KeyFor()}
	for l := 0; l < nLevels; l++ {
		pres := resolve.Float(src, "PRES", i, l)
		temp := resolve.Float(src, "TEMP", i, l)
		psal := resolve.Float(src, "PSAL", i, l)
		if pres == nil && temp == nil && psal == nil {
			continue
		}

		batch.Rows = append(batch.Rows, model.DepthMeasurement{
			PlatformNumber: p.PlatformNumber,
			CycleNumber:    p.CycleNumber,
			Latitude:       p.Latitude,
			Longitude:      p.Longitude,

			Pres: pres,
			Temp: temp,
			Psal: psal,

			PresQC: resolve.QC(src, "PRES_QC", "0", i, l),
			TempQC: resolve.QC(src, "TEMP_QC", "0", i, l),
			PsalQC: resolve.QC(src, "PSAL_QC", "0", i, l),

			PresAdjusted: resolve.Float(src, "PRES_ADJUSTED", i, l),
			TempAdjusted: resolve.Float(src, "TEMP_ADJUSTED", i, l),
			PsalAdjusted: resolve.Float(src, "PSAL_ADJUSTED", i, l),

			PresAdjustedQC: resolve.QC(src, "PRES_ADJUSTED_QC", "0", i, l),
			TempAdjustedQC: resolve.QC(src, "TEMP_ADJUSTED_QC", "0", i, l),
			PsalAdjustedQC: resolve.QC(src, "PSAL_ADJUSTED_QC", "0", i, l),

			PresAdjustedError: resolve.Float(src, "PRES_ADJUSTED_ERROR", i, l),
			TempAdjustedError: resolve.Float(src, "TEMP_ADJUSTED_ERROR", i, l),
			PsalAdjustedError: resolve.Float(src, "PSAL_ADJUSTED_ERROR", i, l),

			Doxy:              resolve.Float(src, "DOXY", i, l),
			DoxyQC:            resolve.QC(src, "DOXY_QC", "0", i, l),
			DoxyAdjusted:      resolve.Float(src, "DOXY_ADJUSTED", i, l),
			DoxyAdjustedQC:    resolve.QC(src, "DOXY_ADJUSTED_QC", "0", i, l),
			DoxyAdjustedError: resolve.Float(src, "DOXY_ADJUSTED_ERROR", i, l),

			Nitrate:              resolve.Float(src, "NITRATE", i, l),
			NitrateQC:            resolve.QC(src, "NITRATE_QC", "0", i, l),
			NitrateAdjusted:      resolve.Float(src, "NITRATE_ADJUSTED", i, l),
			NitrateAdjustedQC:    resolve.QC(src, "NITRATE_ADJUSTED_QC", "0", i, l),
			NitrateAdjustedError: resolve.Float(src, "NITRATE_ADJUSTED_ERROR", i, l),

			PhInSituTotal:              resolve.Float(src, "PH_IN_SITU_TOTAL", i, l),
			PhInSituTotalQC:            resolve.QC(src, "PH_IN_SITU_TOTAL_QC", "0", i, l),
			PhInSituTotalAdjusted:      resolve.Float(src, "PH_IN_SITU_TOTAL_ADJUSTED", i, l),
			PhInSituTotalAdjustedQC:    resolve.QC(src, "PH_IN_SITU_TOTAL_ADJUSTED_QC", "0", i, l),
			PhInSituTotalAdjustedError: resolve.Float(src, "PH_IN_SITU_TOTAL_ADJUSTED_ERROR", i, l),
		})
	}
	return batch
}

// metaFromAttributes builds the fallback meta_table row out of global
// attributes. Returns nil unless at least one identifying field (PI,
// project, data centre, platform type, maker) is present, so platforms
// whose profile files carry no metadata don't get an all-empty row.
func metaFromAttributes(src resolve.Source, platform, projectName, wmoInstType, positioning string) *model.PlatformMetadata {
	attr := func(name string) string { return resolve.AttrChain(src, name, "") }
	date := func(name string) *time.Time { return resolve.ArgoDate(attr(name)) }

	m := &model.PlatformMetadata{
		PlatformNumber: platform,

		DataType:        textOr(attr("DATA_TYPE"), "Argo profile"),
		FormatVersion:   attr("FORMAT_VERSION"),
		HandbookVersion: attr("HANDBOOK_VERSION"),
		DateCreation:    date("DATE_CREATION"),
		DateUpdate:      date("DATE_UPDATE"),

		PTT:            attr("PTT"),
		TransSystem:    attr("TRANS_SYSTEM"),
		TransSystemID:  attr("TRANS_SYSTEM_ID"),
		TransFrequency: attr("TRANS_FREQUENCY"),

		PositioningSystem: positioning,
		PlatformFamily:    attr("PLATFORM_FAMILY"),
		PlatformType:      attr("PLATFORM_TYPE"),
		PlatformMaker:     attr("PLATFORM_MAKER"),
		FirmwareVersion:   attr("FIRMWARE_VERSION"),
		ManualVersion:     attr("MANUAL_VERSION"),
		FloatSerialNo:     attr("FLOAT_SERIAL_NO"),
		DACFormatID:       attr("DAC_FORMAT_ID"),

		WMOInstType: wmoInstType,
		ProjectName: projectName,
		DataCentre:  attr("DATA_CENTRE"),
		PIName:      attr("PI_NAME"),

		Anomaly:      attr("ANOMALY"),
		BatteryType:  attr("BATTERY_TYPE"),
		BatteryPacks: resolve.IntFromText(attr("BATTERY_PACKS")),

		ControllerBoardTypePrimary:   attr("CONTROLLER_BOARD_TYPE_PRIMARY"),
		ControllerBoardTypeSecondary: attr("CONTROLLER_BOARD_TYPE_SECONDARY"),
		SerialNoPrimary:              attr("SERIAL_NO_PRIMARY"),
		SerialNoSecondary:            attr("SERIAL_NO_SECONDARY"),
		SpecialFeatures:              attr("SPECIAL_FEATURES"),
		FloatOwner:                   attr("FLOAT_OWNER"),
		OperatingInstitution:         attr("OPERATING_INSTITUTION"),
		Customisation:                attr("CUSTOMISATION"),

		LaunchDate:      date("LAUNCH_DATE"),
		LaunchLatitude:  resolve.AttrChainFloat(src, "LAUNCH_LATITUDE"),
		LaunchLongitude: resolve.AttrChainFloat(src, "LAUNCH_LONGITUDE"),
		LaunchQC:        resolve.Truncate(attr("LAUNCH_QC"), 1),

		StartDate:     date("START_DATE"),
		StartDateQC:   resolve.Truncate(attr("START_DATE_QC"), 1),
		StartupDate:   date("STARTUP_DATE"),
		StartupDateQC: resolve.Truncate(attr("STARTUP_DATE_QC"), 1),

		EndMissionDate:   date("END_MISSION_DATE"),
		EndMissionStatus: resolve.Truncate(attr("END_MISSION_STATUS"), 1),
	}

	for _, field := range []string{m.PIName, m.ProjectName, m.DataCentre, m.PlatformType, m.PlatformMaker} {
		field = strings.TrimSpace(field)
		if field != "" && field != "Unknown Project" {
			return m
		}
	}
	return nil
}

func varOr(src resolve.Source, name, def string, idx ...int) string {
	s, ok := src.VarText(name, idx...)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
