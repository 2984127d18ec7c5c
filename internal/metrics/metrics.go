// Package metrics is a minimal instrumentation facade. Pipeline code
// records counters and histograms against whatever Backend the process
// installed; the default backend discards everything, so instrumented
// code needs no configuration to run.
package metrics

import "sync"

// Labels are free-form metric dimensions (e.g. kind, status, table).
type Labels map[string]string

// Backend receives recorded metrics. Implementations must be safe for
// concurrent use.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
}

// Flusher is implemented by backends that buffer and submit in batches.
type Flusher interface {
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}

var (
	mu      sync.RWMutex
	current Backend = nopBackend{}
)

// SetBackend installs the process-wide backend. Passing nil restores
// the discarding default.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		current = nopBackend{}
		return
	}
	current = b
}

func backend() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IncCounter adds delta to a named counter.
func IncCounter(name string, delta float64, labels Labels) {
	backend().IncCounter(name, delta, labels)
}

// ObserveHistogram records one sample of a named distribution.
func ObserveHistogram(name string, value float64, labels Labels) {
	backend().ObserveHistogram(name, value, labels)
}

// Flush submits buffered metrics when the installed backend buffers;
// no-op otherwise.
func Flush() error {
	if f, ok := backend().(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Metric names recorded by the ingestion pipeline. Backends key their
// buffers off these.
const (
	FilesTotal          = "ingest_files_total"
	RowsTotal           = "ingest_rows_total"
	FileDurationSeconds = "ingest_file_duration_seconds"
)

// RecordFile counts one processed file by shape and outcome.
func RecordFile(kind, status string) {
	IncCounter(FilesTotal, 1, Labels{"kind": kind, "status": status})
}

// RecordRows counts rows written to one destination table.
func RecordRows(table string, n int64) {
	if n <= 0 {
		return
	}
	IncCounter(RowsTotal, float64(n), Labels{"table": table})
}

// ObserveFileDuration records one file's wall-clock processing time.
func ObserveFileDuration(kind string, seconds float64) {
	ObserveHistogram(FileDurationSeconds, seconds, Labels{"kind": kind})
}
