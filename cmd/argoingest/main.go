// Command argoingest loads Argo float NetCDF files into a relational
// database. Files are named as arguments or discovered with -dir.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"argoetl/internal/config"
	"argoetl/internal/ingest"
	"argoetl/internal/metrics"
	"argoetl/internal/metrics/datadog"
	"argoetl/internal/storage"

	// register all storage backends with the factory.
	// config selects which one to use at runtime.
	_ "argoetl/internal/storage/all"
)

func main() {
	var (
		dir               string
		metricsBackendFlg string
	)
	flag.StringVar(&dir, "dir", "", "directory to scan for *.nc files (merged with positional args)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (datadog, none); overrides METRICS_BACKEND")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}

	log := logrus.New()
	log.SetLevel(cfg.Level())
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	files, err := collectFiles(flag.Args(), dir)
	if err != nil {
		fatalf("%v", err)
	}
	if len(files) == 0 {
		fatalf("no input files; name *.nc files as arguments or pass -dir")
	}

	// Decide metrics backend: flag wins over env/config.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = cfg.MetricsBackend
	}
	switch backendName {
	case "datadog":
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName:    "argoingest",
			Tags:       datadog.ParseTagsCSV(cfg.MetricsTags),
			FlushEvery: 60 * time.Second,
		})
		if err != nil {
			log.WithError(err).Warn("metrics: datadog init failed; metrics disabled")
		} else {
			log.WithFields(logrus.Fields{"backend": backendName}).Info("metrics enabled")
			metrics.SetBackend(b)

			// Close() stops the periodic flush loop and performs one
			// final Flush(); this is the clean shutdown path.
			defer func() {
				if err := b.Close(); err != nil {
					log.WithError(err).Warn("metrics: close/flush error")
				}
			}()
		}

	case "", "none":
		log.Debug("metrics disabled")

	default:
		log.WithFields(logrus.Fields{"backend": backendName}).Warn("unknown metrics backend; metrics disabled")
	}

	ctx := context.Background()

	store, err := storage.New(ctx, storage.Config{
		Kind:      cfg.StorageKind,
		DSN:       cfg.DatabaseURL,
		BatchSize: cfg.BatchSize,
	})
	if err != nil {
		fatalf("storage: %v", err)
	}
	defer store.Close()

	if cfg.AutoCreateTables {
		if err := store.EnsureSchema(ctx); err != nil {
			fatalf("ensure schema: %v", err)
		}
	}

	start := time.Now()
	results := ingest.New(store, log).ProcessAll(ctx, files)

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"files":    len(results),
		"failed":   failed,
		"duration": time.Since(start).Truncate(time.Millisecond).String(),
	}).Info("run complete")

	if failed > 0 {
		os.Exit(1)
	}
}

// collectFiles merges positional arguments with a -dir scan. The scan
// is non-recursive and keeps only *.nc entries, sorted for stable
// ordering across runs.
func collectFiles(args []string, dir string) ([]string, error) {
	files := append([]string(nil), args...)

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if filepath.Ext(e.Name()) != ".nc" {
				continue
			}
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
