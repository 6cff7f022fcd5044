// Package schema has configs, models and shared constants for all parts of railscan.
package schema

import "time"

// Parameter represents one telemetry signal parsed from a raw column header.
// It includes the decoded type, wagon and line information plus the derived
// classification tags used for filtering and reporting.
type Parameter struct {
	SignalCode         string        // Short identifier segment of the header (unique per load)
	FullColumn         string        // Original header as it appears in the table
	Line               string        // Communication line the signal travels over
	Description        string        // Free-form description from extended headers
	DataType           DataType      // Declared signal type (B, BY, W, DW, F, WF)
	SignalParts        []string      // Tokens remaining after type and wagon are stripped
	Wagon              string        // Wagon number "1".."15", empty if not wagon-scoped
	IsTimestampRelated bool          // True when the signal carries timestamp components
	ComponentType      ComponentType // Vehicle subsystem derived from keywords
	HardwareType       HardwareType  // Device class derived from keywords or data type
	IsProblematic      bool          // Header did not match the expected naming grammar
}

// TimeRange is a closed interval over timestamps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the width of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t falls inside the range (inclusive bounds).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// IsZero reports whether the range has not been set.
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// SourceInfo describes where a table was loaded from.
type SourceInfo struct {
	Path     string            // File path of the export, if any
	Encoding string            // Character encoding reported by the loader
	Extra    map[string]string // Free-form loader metadata
}

// Table is the loaded telemetry data: one rectangular block of raw cells plus
// the reserved timestamp column produced by reconstruction. A Table is
// replaced wholesale on reload; only the timestamp column is repopulated in
// place during repair.
type Table struct {
	Headers    []string            // Original column order
	Columns    map[string][]string // Header name -> raw cells, all of equal length
	Rows       int                 // Row count shared by every column
	Timestamps []time.Time         // Reconstructed per-row timestamps
	TimeValid  []bool              // Per-row validity of the timestamp column

	Range            TimeRange          // Min/max over valid timestamps, never zero-width
	Tier             ReconstructionTier // Strategy that produced the timestamp column
	TimestampColumns map[string]string  // Component name -> source column, component tier only
	TimestampWagon   string             // Wagon whose components were used, empty if synthetic
	Source           SourceInfo
}

// ChangeStats is the statistics bundle computed for one column inside the
// active analysis window. Numeric fields are meaningful only when IsNumeric.
type ChangeStats struct {
	TotalCount  int     `json:"total_count"`
	ValidCount  int     `json:"valid_count"`
	NullCount   int     `json:"null_count"`
	UniqueCount int     `json:"unique_count"`
	UniqueRatio float64 `json:"unique_ratio"`

	IsNumeric bool    `json:"is_numeric"`
	Min       float64 `json:"min,omitempty"`
	Max       float64 `json:"max,omitempty"`
	Mean      float64 `json:"mean,omitempty"`
	Std       float64 `json:"std,omitempty"`
	Variance  float64 `json:"variance,omitempty"`
	Range     float64 `json:"range,omitempty"`
	CoV       float64 `json:"coefficient_of_variation,omitempty"`
}

// ChangeResult is the verdict of the change detector for one column.
type ChangeResult struct {
	IsChanged   bool        `json:"is_changed"`
	ChangeScore float64     `json:"change_score"`
	Stats       ChangeStats `json:"statistics"`
}

// ParameterChange pairs a parameter with its change-detection result.
type ParameterChange struct {
	Parameter Parameter    `json:"parameter"`
	Result    ChangeResult `json:"result"`
}

// AnalysisReport is the detailed output of a full change analysis: the
// changed/unchanged split plus per-parameter statistics for both sides.
type AnalysisReport struct {
	Threshold float64           `json:"threshold"`
	Window    TimeRange         `json:"-"`
	Changed   []ParameterChange `json:"changed"`
	Unchanged []ParameterChange `json:"unchanged"`
	Skipped   int               `json:"skipped"` // Problematic or column-less parameters
}

// TimeRangeFields is the boundary view of the table's time axis, with all
// timestamps formatted for display.
type TimeRangeFields struct {
	From         string             `json:"from"`
	To           string             `json:"to"`
	Duration     string             `json:"duration"`
	TotalRecords int                `json:"total_records"`
	SourceTier   ReconstructionTier `json:"source_tier"`
	Window       string             `json:"window"`
}

// LoadReport summarizes a completed load. Warnings carry non-fatal anomalies
// (degraded reconstruction, high problematic counts) that callers should
// surface but must not treat as errors.
type LoadReport struct {
	Parameters      int                `json:"parameters"`
	Problematic     int                `json:"problematic"`
	Rows            int                `json:"rows"`
	Tier            ReconstructionTier `json:"tier"`
	TimestampWagon  string             `json:"timestamp_wagon,omitempty"`
	ValidTimestamps int                `json:"valid_timestamps"`
	Warnings        []string           `json:"warnings,omitempty"`
}

// StoreStatus reports the state of the analysis run store.
type StoreStatus struct {
	Backend       DatabaseBackend `json:"backend"`
	Location      string          `json:"location"`
	Runs          int             `json:"runs"`
	ResultRows    int             `json:"result_rows"`
	LastRunAt     time.Time       `json:"last_run_at"`
	SchemaVersion uint            `json:"schema_version"`
}
