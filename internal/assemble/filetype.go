// Package assemble turns resolved NetCDF content into the relational
// records defined in model. One assembler per file shape; all three are
// pure functions over a resolve.Source, so they test without fixtures
// on disk.
package assemble

import (
	"path/filepath"
	"strings"

	"argoetl/internal/model"
)

// DetectKind classifies a file by its name. Argo file names carry the
// shape as a substring ("meta", "prof", "traj"); anything else is
// unknown and the processor tries profile shape first, then metadata.
func DetectKind(path string) model.FileKind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "meta"):
		return model.KindMeta
	case strings.Contains(name, "prof"):
		return model.KindProfile
	case strings.Contains(name, "traj"):
		return model.KindTrajectory
	}
	return model.KindUnknown
}
