// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/wagonlab/railscan/schema"
)

// DataSource is the capability surface every loader implementation must
// satisfy. The engine only ever talks to a loaded table through this
// interface; optional attributes are typed methods here instead of being
// probed for at runtime.
type DataSource interface {
	// Headers returns the original column headers in file order.
	Headers() []string

	// RowCount returns the number of data rows.
	RowCount() int

	// Column returns the raw cells for a header name. The second return is
	// false when the column does not exist.
	Column(name string) ([]string, bool)

	// Path returns the origin path of the data, empty for in-memory sources.
	Path() string

	// Encoding returns the character encoding the loader decoded from.
	Encoding() string

	// Metadata returns free-form loader key/values (delimiter, skipped rows).
	Metadata() map[string]string
}

// ChangeDetector decides whether a column's values changed within a window.
// The production implementation is pure; tests substitute a counting spy to
// observe cache behavior.
type ChangeDetector interface {
	// Evaluate computes the full verdict and statistics bundle for values.
	Evaluate(values []string, threshold float64) schema.ChangeResult
}

// RunStore tracks completed analysis runs in an external database. It is a
// CLI-level export sink: the engine itself never persists state.
type RunStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalParams, changedParams int) error

	// RecordParameterResult stores one parameter's change verdict for a run.
	RecordParameterResult(runID int64, param schema.Parameter, result schema.ChangeResult) error

	// Status returns status information about the store.
	Status() (schema.StoreStatus, error)

	// Clear removes all recorded runs and results.
	Clear() error

	// AllRuns retrieves every recorded analysis run, for export.
	AllRuns() ([]schema.AnalysisRunRecord, error)

	// AllParameterResults retrieves every recorded parameter result, for export.
	AllParameterResults() ([]schema.ParameterResultRecord, error)

	// Close closes the underlying connection.
	Close() error
}
