package runstore

import (
	"errors"
	"fmt"

	"github.com/wagonlab/railscan/internal/parquet"
	"github.com/wagonlab/railscan/schema"
)

// ExecuteExport dumps all recorded runs and parameter results to Parquet files.
func ExecuteExport(backend schema.DatabaseBackend, connStr, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store, err := New(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.Runs == 0 {
		return errors.New("no analysis runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.Runs)
	fmt.Printf("Total parameter results: %d\n", status.ResultRows)

	runs, err := store.AllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	results, err := store.AllParameterResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve parameter results: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetResults := make([]parquet.ParameterChangeRow, len(results))
	for i, r := range results {
		parquetResults[i] = parquet.ParameterChangeRow{
			RunID:       r.RunID,
			SignalCode:  r.SignalCode,
			EvaluatedAt: r.EvaluatedAt,
			DataType:    r.DataType,
			Wagon:       r.Wagon,
			IsChanged:   r.IsChanged,
			ChangeScore: r.ChangeScore,
			IsNumeric:   r.IsNumeric,
			UniqueCount: r.UniqueCount,
			UniqueRatio: r.UniqueRatio,
			Mean:        r.Mean,
			Std:         r.Std,
			CoV:         r.CoV,
		}
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	resultsFile := outputFile + ".parameter_results.parquet"
	if err := parquet.WriteParameterChangesParquet(parquetResults, resultsFile); err != nil {
		return fmt.Errorf("failed to write parameter results: %w", err)
	}
	fmt.Printf("Exported %d parameter results to: %s\n", len(parquetResults), resultsFile)

	return nil
}
