package assemble

import (
	"strings"

	"argoetl/internal/model"
	"argoetl/internal/resolve"
)

// historyEntries extracts processing-history rows. Both metadata and
// trajectory files carry the HISTORY_* block; fields a given file lacks
// come out empty. Rows with no institution, step, software, and action
// are noise and are skipped.
func historyEntries(src resolve.Source, platform string) []model.HistoryEntry {
	n := src.DimLen("N_HISTORY")
	if n == 0 {
		n = src.VarLen("HISTORY_INSTITUTION")
	}

	out := make([]model.HistoryEntry, 0, n)
	for i := 0; i < n; i++ {
		institution := strings.TrimSpace(varAt(src, "HISTORY_INSTITUTION", i))
		step := strings.TrimSpace(varAt(src, "HISTORY_STEP", i))
		software := strings.TrimSpace(varAt(src, "HISTORY_SOFTWARE", i))
		action := strings.TrimSpace(varAt(src, "HISTORY_ACTION", i))
		if institution == "" && step == "" && software == "" && action == "" {
			continue
		}

		out = append(out, model.HistoryEntry{
			PlatformNumber:         platform,
			HistoryInstitution:     resolve.Truncate(institution, 100),
			HistoryStep:            resolve.Truncate(step, 100),
			HistorySoftware:        resolve.Truncate(software, 100),
			HistorySoftwareRelease: resolve.Truncate(varAt(src, "HISTORY_SOFTWARE_RELEASE", i), 50),
			HistoryReference:       resolve.Truncate(varAt(src, "HISTORY_REFERENCE", i), 200),
			HistoryDate:            resolve.ArgoDate(varAt(src, "HISTORY_DATE", i)),
			HistoryAction:          resolve.Truncate(action, 100),
			HistoryParameter:       resolve.Truncate(varAt(src, "HISTORY_PARAMETER", i), 100),
			HistoryStartPres:       resolve.Float(src, "HISTORY_START_PRES", i),
			HistoryStopPres:        resolve.Float(src, "HISTORY_STOP_PRES", i),
			HistoryPreviousValue:   resolve.Truncate(varAt(src, "HISTORY_PREVIOUS_VALUE", i), 100),
			HistoryQCTest:          resolve.Truncate(varAt(src, "HISTORY_QCTEST", i), 100),
		})
	}
	return out
}
