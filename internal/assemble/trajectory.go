package assemble

import (
	"fmt"
	"strings"

	"argoetl/internal/model"
	"argoetl/internal/resolve"
)

// TrajectoryData is everything a trajectory-shape file contributes.
// Measurements leave TrajectoryID zero; the processor stamps it from
// the store's cycle -> trajectory_id map after cycles are persisted,
// dropping measurements whose cycle has no summary row.
type TrajectoryData struct {
	PlatformNumber string
	Cycles         []model.TrajectoryCycle
	Measurements   []model.TrajectoryMeasurement
	History        []model.HistoryEntry
}

// Trajectory assembles a trajectory-shape file.
func Trajectory(src resolve.Source) (*TrajectoryData, error) {
	platform := platformNumber(src)
	if platform == "" {
		return nil, fmt.Errorf("assemble: trajectory file has no platform number")
	}

	out := &TrajectoryData{PlatformNumber: platform}

	nCycle := src.DimLen("N_CYCLE")
	for i := 0; i < nCycle; i++ {
		out.Cycles = append(out.Cycles, assembleCycle(src, platform, i))
	}

	nMeas := src.DimLen("N_MEASUREMENT")
	for i := 0; i < nMeas; i++ {
		if m, ok := assembleMeasurement(src, platform, i); ok {
			out.Measurements = append(out.Measurements, m)
		}
	}
	out.Measurements = dedupeMeasurements(out.Measurements)

	out.History = historyEntries(src, platform)
	return out, nil
}

func assembleCycle(src resolve.Source, platform string, i int) model.TrajectoryCycle {
	// Older files omit CYCLE_NUMBER_INDEX; position doubles as the
	// cycle number there.
	cycle := resolve.Int(src, "CYCLE_NUMBER_INDEX", i)
	if cycle == nil {
		v := int64(i)
		cycle = &v
	}

	return model.TrajectoryCycle{
		PlatformNumber: platform,
		CycleNumber:    cycle,

		JULDFirstLocation:     resolve.JulianVar(src, "JULD_FIRST_LOCATION", i),
		JULDLastLocation:      resolve.JulianVar(src, "JULD_LAST_LOCATION", i),
		JULDFirstMessage:      resolve.JulianVar(src, "JULD_FIRST_MESSAGE", i),
		JULDLastMessage:       resolve.JulianVar(src, "JULD_LAST_MESSAGE", i),
		JULDAscentStart:       resolve.JulianVar(src, "JULD_ASCENT_START", i),
		JULDAscentEnd:         resolve.JulianVar(src, "JULD_ASCENT_END", i),
		JULDDescentStart:      resolve.JulianVar(src, "JULD_DESCENT_START", i),
		JULDDescentEnd:        resolve.JulianVar(src, "JULD_DESCENT_END", i),
		JULDParkStart:         resolve.JulianVar(src, "JULD_PARK_START", i),
		JULDParkEnd:           resolve.JulianVar(src, "JULD_PARK_END", i),
		JULDTransmissionStart: resolve.JulianVar(src, "JULD_TRANSMISSION_START", i),
		JULDTransmissionEnd:   resolve.JulianVar(src, "JULD_TRANSMISSION_END", i),

		PositioningSystem:   resolve.Truncate(resolve.AttrChain(src, "POSITIONING_SYSTEM", "ARGOS"), 50),
		DataMode:            resolve.Truncate(varOr(src, "DATA_MODE", "R", i), 1),
		ConfigMissionNumber: resolve.Int(src, "CONFIG_MISSION_NUMBER", i),
		Grounded:            resolve.Truncate(varOr(src, "GROUNDED", "U", i), 1),

		RepresentativeParkPressure:       resolve.Float(src, "REPRESENTATIVE_PARK_PRESSURE", i),
		RepresentativeParkPressureStatus: resolve.QC(src, "REPRESENTATIVE_PARK_PRESSURE_STATUS", "", i),

		CycleNumberAdjusted: resolve.Int(src, "CYCLE_NUMBER_INDEX_ADJUSTED", i),

		JULDFirstLocationStatus: resolve.QC(src, "JULD_FIRST_LOCATION_STATUS", "", i),
		JULDLastLocationStatus:  resolve.QC(src, "JULD_LAST_LOCATION_STATUS", "", i),
		JULDFirstMessageStatus:  resolve.QC(src, "JULD_FIRST_MESSAGE_STATUS", "", i),
		JULDLastMessageStatus:   resolve.QC(src, "JULD_LAST_MESSAGE_STATUS", "", i),
	}
}

// assembleMeasurement builds one fine-grained row. A row with no
// position, no time, and no measurement code pins down nothing and is
// dropped.
func assembleMeasurement(src resolve.Source, platform string, i int) (model.TrajectoryMeasurement, bool) {
	lat := resolve.Float(src, "LATITUDE", i)
	lon := resolve.Float(src, "LONGITUDE", i)
	juld := resolve.JulianVar(src, "JULD", i)
	code := resolve.Int(src, "MEASUREMENT_CODE", i)

	if lat == nil && lon == nil && juld == nil && code == nil {
		return model.TrajectoryMeasurement{}, false
	}

	return model.TrajectoryMeasurement{
		PlatformNumber:   platform,
		CycleNumber:      resolve.Int(src, "CYCLE_NUMBER", i),
		MeasurementCode:  code,
		MeasurementIndex: int64(i),

		Latitude:  lat,
		Longitude: lon,

		JULD:               juld,
		JULDStatus:         resolve.QC(src, "JULD_STATUS", "9", i),
		JULDAdjusted:       resolve.JulianVar(src, "JULD_ADJUSTED", i),
		JULDAdjustedQC:     resolve.QC(src, "JULD_ADJUSTED_QC", "0", i),
		JULDAdjustedStatus: resolve.QC(src, "JULD_ADJUSTED_STATUS", "9", i),

		PositionAccuracy:      resolve.QC(src, "POSITION_ACCURACY", "", i),
		AxesErrorEllipseMajor: resolve.Float(src, "AXES_ERROR_ELLIPSE_MAJOR", i),
		AxesErrorEllipseMinor: resolve.Float(src, "AXES_ERROR_ELLIPSE_MINOR", i),
		AxesErrorEllipseAngle: resolve.Float(src, "AXES_ERROR_ELLIPSE_ANGLE", i),
		SatelliteName:         resolve.Truncate(strings.TrimSpace(varAt(src, "SATELLITE_NAME", i)), 10),
		PositioningSystem:     resolve.Truncate(strings.TrimSpace(varAt(src, "POSITIONING_SYSTEM", i)), 50),
		PositionQC:            resolve.QC(src, "POSITION_QC", "0", i),

		Pres:              resolve.Float(src, "PRES", i),
		PresQC:            resolve.QC(src, "PRES_QC", "0", i),
		PresAdjusted:      resolve.Float(src, "PRES_ADJUSTED", i),
		PresAdjustedQC:    resolve.QC(src, "PRES_ADJUSTED_QC", "0", i),
		PresAdjustedError: resolve.Float(src, "PRES_ADJUSTED_ERROR", i),

		Temp:              resolve.Float(src, "TEMP", i),
		TempQC:            resolve.QC(src, "TEMP_QC", "0", i),
		TempAdjusted:      resolve.Float(src, "TEMP_ADJUSTED", i),
		TempAdjustedQC:    resolve.QC(src, "TEMP_ADJUSTED_QC", "0", i),
		TempAdjustedError: resolve.Float(src, "TEMP_ADJUSTED_ERROR", i),

		Psal:              resolve.Float(src, "PSAL", i),
		PsalQC:            resolve.QC(src, "PSAL_QC", "0", i),
		PsalAdjusted:      resolve.Float(src, "PSAL_ADJUSTED", i),
		PsalAdjustedQC:    resolve.QC(src, "PSAL_ADJUSTED_QC", "0", i),
		PsalAdjustedError: resolve.Float(src, "PSAL_ADJUSTED_ERROR", i),
	}, true
}

// dedupeMeasurements collapses rows that share the composite natural
// key, keeping the first occurrence. The store's ON CONFLICT DO NOTHING
// handles cross-run duplicates but cannot help within one multi-row
// insert.
func dedupeMeasurements(rows []model.TrajectoryMeasurement) []model.TrajectoryMeasurement {
	if len(rows) < 2 {
		return rows
	}
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for i := range rows {
		k := rows[i].DedupeKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, rows[i])
	}
	return out
}
