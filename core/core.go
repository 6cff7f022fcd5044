// Package core has core logic for parsing, reconstruction, change detection
// and ranking.
package core

import (
	"fmt"
	"time"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/internal/loader"
	"github.com/wagonlab/railscan/internal/outwriter"
	"github.com/wagonlab/railscan/internal/runstore"
	"github.com/wagonlab/railscan/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(cfg *contract.Config) error

// ExecuteParams loads the telemetry export and prints the parameter inventory.
// It serves as the main entry point for the 'params' mode.
func ExecuteParams(cfg *contract.Config) error {
	model, err := loadModel(cfg)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter()
	return ow.WriteParams(model.FilterParameters(), model.LoadReport(), cfg)
}

// ExecuteChanged runs change detection and prints the ranked changed
// parameters. It serves as the main entry point for the 'changed' mode.
func ExecuteChanged(cfg *contract.Config) error {
	start := time.Now()
	model, err := loadModel(cfg)
	if err != nil {
		return err
	}

	changed, err := model.FindChangedParameters(cfg.Threshold)
	if err != nil {
		return err
	}
	ranked := RankChanges(changed, cfg.ResultLimit)
	duration := time.Since(start)

	if err := recordRun(cfg, start, len(model.FilterParameters()), ranked); err != nil {
		contract.LogWarn("Failed to record analysis run", err)
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteChanged(ranked, cfg, duration)
}

// ExecuteAnalyze runs the detailed analysis and prints the full report.
// It serves as the main entry point for the 'analyze' mode.
func ExecuteAnalyze(cfg *contract.Config) error {
	start := time.Now()
	model, err := loadModel(cfg)
	if err != nil {
		return err
	}

	report, err := model.AnalyzeDetailed(cfg.Threshold)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	return ow.WriteAnalysis(report, cfg, duration)
}

// ExecuteTimestamps loads the export, optionally repairs the timestamp
// column, and prints the time axis summary. It serves as the main entry
// point for the 'timestamps' mode.
func ExecuteTimestamps(cfg *contract.Config) error {
	model, err := loadModel(cfg)
	if err != nil {
		return err
	}

	if cfg.Repair != "" {
		if err := model.RepairTimestamps(cfg.Repair, cfg.SamplePeriod); err != nil {
			return fmt.Errorf("timestamp repair failed: %w", err)
		}
	}

	fields, err := model.TimeRangeFields()
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteTimestamps(fields, model.LoadReport(), cfg)
}

// loadModel builds a model from the configured CSV export and applies the
// configured window and priority mode.
func loadModel(cfg *contract.Config) (*Model, error) {
	src, err := loader.FromCSVFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.InputPath, err)
	}

	model := NewModel(nil)
	report, err := model.Load(src)
	if err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		contract.LogWarn(w, nil)
	}

	model.SetPriorityMode(cfg.Priority)

	if !cfg.From.IsZero() && !cfg.To.IsZero() {
		if !model.SetUserTimeRange(cfg.From, cfg.To) {
			return nil, fmt.Errorf("invalid analysis window: %s to %s",
				schema.FormatTimestamp(cfg.From), schema.FormatTimestamp(cfg.To))
		}
	}

	return model, nil
}

// recordRun stores the run and its per-parameter results when run tracking
// is enabled. A NoneBackend store swallows everything.
func recordRun(cfg *contract.Config, start time.Time, totalParams int, ranked []schema.ParameterChange) error {
	if cfg.StoreBackend == schema.NoneBackend || cfg.StoreBackend == "" {
		return nil
	}

	store, err := runstore.New(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(start, map[string]any{
		"input":     cfg.InputPath,
		"threshold": cfg.Threshold,
		"limit":     cfg.ResultLimit,
	})
	if err != nil {
		return err
	}

	for _, c := range ranked {
		if err := store.RecordParameterResult(runID, c.Parameter, c.Result); err != nil {
			return err
		}
	}

	return store.EndRun(runID, time.Now(), totalParams, len(ranked))
}
