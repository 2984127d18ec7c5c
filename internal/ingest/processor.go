// Package ingest drives one file through the pipeline: classify the
// file by name, decode it, assemble relational records, and persist
// them in dependency order (parents before children).
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"argoetl/internal/assemble"
	"argoetl/internal/metrics"
	"argoetl/internal/model"
	"argoetl/internal/ncdf"
	"argoetl/internal/resolve"
	"argoetl/internal/storage"
)

// Processor ties the assemblers to a Store. It holds no per-file state
// and is safe to reuse across files.
type Processor struct {
	store storage.Store
	log   logrus.FieldLogger

	// open is swapped in tests to feed in-memory datasets.
	open func(path string) (resolve.Source, io.Closer, error)
}

// New constructs a Processor. A nil logger falls back to the standard
// logrus logger.
func New(store storage.Store, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		store: store,
		log:   log,
		open:  openDataset,
	}
}

func openDataset(path string) (resolve.Source, io.Closer, error) {
	ds, err := ncdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return ds, ds, nil
}

// ProcessAll processes files sequentially and reports one Result per
// file, in input order. A failing file does not stop the run.
func (p *Processor) ProcessAll(ctx context.Context, paths []string) []model.Result {
	results := make([]model.Result, 0, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			results = append(results, model.Result{
				OK: false, Err: ctx.Err(), File: path, Kind: model.KindUnknown,
			})
			continue
		}
		results = append(results, p.ProcessFile(ctx, path))
	}
	return results
}

// ProcessFile runs one file end to end.
//
// Edge cases:
//   - Files whose name matches no known shape are tried as profile
//     first, then as metadata; the Result reports the shape that stuck.
//   - Persistence order is parents before children; child rows whose
//     parent did not persist are dropped, not errored.
func (p *Processor) ProcessFile(ctx context.Context, path string) model.Result {
	start := time.Now()
	kind := assemble.DetectKind(path)

	res := p.processFile(ctx, path, kind)

	status := "ok"
	if !res.OK {
		status = "error"
		p.log.WithFields(logrus.Fields{"file": path, "kind": res.Kind}).WithError(res.Err).Error("file failed")
	} else {
		p.log.WithFields(logrus.Fields{"file": path, "kind": res.Kind, "rows": res.RowCounts}).Info("file processed")
	}
	metrics.RecordFile(string(res.Kind), status)
	metrics.ObserveFileDuration(string(res.Kind), time.Since(start).Seconds())
	return res
}

func (p *Processor) processFile(ctx context.Context, path string, kind model.FileKind) model.Result {
	src, closer, err := p.open(path)
	if err != nil {
		return model.Result{OK: false, Err: fmt.Errorf("open %s: %w", path, err), File: path, Kind: kind}
	}
	defer closer.Close()

	counts := map[string]int{}

	switch kind {
	case model.KindMeta:
		err = p.processMeta(ctx, src, counts)
	case model.KindProfile:
		err = p.processProfile(ctx, src, counts)
	case model.KindTrajectory:
		err = p.processTrajectory(ctx, src, counts)
	default:
		// Nothing in the name to go on. Profile files are by far the
		// most common, so try that shape first, then metadata.
		if err = p.processProfile(ctx, src, counts); err == nil {
			kind = model.KindProfile
			break
		}
		clear(counts)
		if metaErr := p.processMeta(ctx, src, counts); metaErr == nil {
			kind, err = model.KindMeta, nil
		}
	}

	if err != nil {
		return model.Result{OK: false, Err: err, File: path, Kind: kind}
	}
	return model.Result{OK: true, File: path, Kind: kind, RowCounts: counts}
}

func (p *Processor) processMeta(ctx context.Context, src resolve.Source, counts map[string]int) error {
	data, err := assemble.Meta(src)
	if err != nil {
		return err
	}

	if err := p.store.UpsertPlatform(ctx, data.Platform); err != nil {
		return fmt.Errorf("upsert platform: %w", err)
	}
	count(counts, storage.TablePlatform, 1)

	if err := p.store.UpsertPlatformMetadata(ctx, data.Metadata); err != nil {
		return fmt.Errorf("upsert metadata: %w", err)
	}
	count(counts, storage.TableMetadata, 1)

	if n, err := p.store.UpsertParameters(ctx, data.Parameters); err != nil {
		return fmt.Errorf("upsert parameters: %w", err)
	} else {
		count(counts, storage.TableParameter, n)
	}
	if n, err := p.store.UpsertSensors(ctx, data.Sensors); err != nil {
		return fmt.Errorf("upsert sensors: %w", err)
	} else {
		count(counts, storage.TableSensor, n)
	}
	if n, err := p.store.UpsertLaunchConfigEntries(ctx, data.LaunchConfig); err != nil {
		return fmt.Errorf("upsert launch config: %w", err)
	} else {
		count(counts, storage.TableLaunchConfig, n)
	}
	if n, err := p.store.UpsertConfigEntries(ctx, data.Config); err != nil {
		return fmt.Errorf("upsert config: %w", err)
	} else {
		count(counts, storage.TableConfig, n)
	}
	if n, err := p.store.UpsertHistoryEntries(ctx, data.History); err != nil {
		return fmt.Errorf("upsert history: %w", err)
	} else {
		count(counts, storage.TableHistory, n)
	}
	return nil
}

func (p *Processor) processProfile(ctx context.Context, src resolve.Source, counts map[string]int) error {
	data, err := assemble.Profile(src)
	if err != nil {
		return err
	}

	if err := p.store.UpsertPlatform(ctx, data.Platform); err != nil {
		return fmt.Errorf("upsert platform: %w", err)
	}
	count(counts, storage.TablePlatform, 1)

	// A metadata row scraped off profile attributes is a stopgap; it
	// never overwrites a row a real metadata file already wrote.
	if data.Metadata != nil {
		has, err := p.store.HasPlatformMetadata(ctx, data.Platform.PlatformNumber)
		if err != nil {
			return fmt.Errorf("check metadata: %w", err)
		}
		if !has {
			if err := p.store.UpsertPlatformMetadata(ctx, *data.Metadata); err != nil {
				return fmt.Errorf("upsert metadata: %w", err)
			}
			count(counts, storage.TableMetadata, 1)
		}
	}

	ids, err := p.store.UpsertProfiles(ctx, data.Profiles)
	if err != nil {
		return fmt.Errorf("upsert profiles: %w", err)
	}
	count(counts, storage.TableProfile, int64(len(data.Profiles)))

	var depthRows []model.DepthMeasurement
	for _, batch := range data.Depths {
		id, ok := ids[batch.Key]
		if !ok {
			p.log.WithFields(logrus.Fields{
				"platform": batch.Key.PlatformNumber,
			}).Warn("dropping depth rows with no persisted profile")
			continue
		}
		for i := range batch.Rows {
			batch.Rows[i].ProfileID = id
		}
		depthRows = append(depthRows, batch.Rows...)
	}
	if n, err := p.store.InsertDepthMeasurements(ctx, depthRows); err != nil {
		return fmt.Errorf("insert depth measurements: %w", err)
	} else {
		count(counts, storage.TableDepth, n)
	}
	return nil
}

func (p *Processor) processTrajectory(ctx context.Context, src resolve.Source, counts map[string]int) error {
	data, err := assemble.Trajectory(src)
	if err != nil {
		return err
	}

	if n, err := p.store.UpsertTrajectoryCycles(ctx, data.Cycles); err != nil {
		return fmt.Errorf("upsert trajectory cycles: %w", err)
	} else {
		count(counts, storage.TableTrajectory, n)
	}

	ids, err := p.store.TrajectoryCycleIDs(ctx, data.PlatformNumber)
	if err != nil {
		return fmt.Errorf("trajectory cycle ids: %w", err)
	}

	var rows []model.TrajectoryMeasurement
	for i := range data.Measurements {
		m := data.Measurements[i]
		if m.CycleNumber == nil {
			continue
		}
		id, ok := ids[*m.CycleNumber]
		if !ok {
			continue
		}
		m.TrajectoryID = id
		rows = append(rows, m)
	}
	if dropped := len(data.Measurements) - len(rows); dropped > 0 {
		p.log.WithFields(logrus.Fields{
			"platform": data.PlatformNumber,
			"dropped":  dropped,
		}).Warn("dropping measurements with no persisted cycle")
	}
	if n, err := p.store.InsertTrajectoryMeasurements(ctx, rows); err != nil {
		return fmt.Errorf("insert trajectory measurements: %w", err)
	} else {
		count(counts, storage.TableTrajectoryDepth, n)
	}

	if n, err := p.store.UpsertHistoryEntries(ctx, data.History); err != nil {
		return fmt.Errorf("upsert history: %w", err)
	} else {
		count(counts, storage.TableHistory, n)
	}
	return nil
}

func count(counts map[string]int, table string, n int64) {
	if n <= 0 {
		return
	}
	counts[table] += int(n)
	metrics.RecordRows(table, n)
}
