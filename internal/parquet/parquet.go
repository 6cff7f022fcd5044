// Package parquet provides data structures and functions for exporting
// change-detection results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/wagonlab/railscan/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the railscan_analysis_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalParameters is the number of parameters evaluated in this run
	TotalParameters int32 `parquet:"total_parameters,snappy"`

	// ChangedParameters is the number of parameters judged changed
	ChangedParameters int32 `parquet:"changed_parameters,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ParameterChangeRow represents one parameter's change evaluation in a run.
// This struct maps to the railscan_parameter_results database table.
type ParameterChangeRow struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// SignalCode is the decoded signal identity
	SignalCode string `parquet:"signal_code,snappy"`

	// EvaluatedAt is when this parameter was evaluated
	EvaluatedAt time.Time `parquet:"evaluated_at,snappy"`

	// DataType is the decoded type code of the signal
	DataType string `parquet:"data_type,snappy"`

	// Wagon is the wagon number extracted from the header, if any (nullable)
	Wagon *string `parquet:"wagon,optional,snappy"`

	// IsChanged records the change verdict
	IsChanged bool `parquet:"is_changed,snappy"`

	// ChangeScore is the clamped change magnitude
	ChangeScore float64 `parquet:"change_score,snappy"`

	// IsNumeric records whether the column parsed as numeric
	IsNumeric bool `parquet:"is_numeric,snappy"`

	// UniqueCount is the count of distinct valid values
	UniqueCount int32 `parquet:"unique_count,snappy"`

	// UniqueRatio is unique over valid
	UniqueRatio float64 `parquet:"unique_ratio,snappy"`

	// Mean of the numeric values, zero for categorical columns
	Mean float64 `parquet:"mean,snappy"`

	// Std is the population standard deviation
	Std float64 `parquet:"std,snappy"`

	// CoV is the coefficient of variation
	CoV float64 `parquet:"coefficient_of_variation,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteParameterChangesParquet writes a slice of ParameterChangeRow structs to a Parquet file.
func WriteParameterChangesParquet(data []ParameterChangeRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ParameterChangeRow struct tags
	writer := parquet.NewGenericWriter[ParameterChangeRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertParameterChanges converts in-memory change results to Parquet rows.
// Rows produced outside a tracked run carry RunID zero.
func ConvertParameterChanges(changes []schema.ParameterChange, evaluatedAt time.Time) []ParameterChangeRow {
	result := make([]ParameterChangeRow, len(changes))
	for i, c := range changes {
		s := c.Result.Stats
		row := ParameterChangeRow{
			SignalCode:  c.Parameter.SignalCode,
			EvaluatedAt: evaluatedAt,
			DataType:    string(c.Parameter.DataType),
			IsChanged:   c.Result.IsChanged,
			ChangeScore: c.Result.ChangeScore,
			IsNumeric:   s.IsNumeric,
			UniqueCount: int32(s.UniqueCount),
			UniqueRatio: s.UniqueRatio,
			Mean:        s.Mean,
			Std:         s.Std,
			CoV:         s.CoV,
		}
		if c.Parameter.Wagon != "" {
			wagon := c.Parameter.Wagon
			row.Wagon = &wagon
		}
		result[i] = row
	}
	return result
}

// ConvertRunRecords converts stored run records to Parquet rows.
func ConvertRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			RunID:             record.RunID,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			TotalParameters:   record.TotalParameters,
			ChangedParameters: record.ChangedParameters,
			ConfigParams:      record.ConfigParams,
		}
	}
	return result
}
