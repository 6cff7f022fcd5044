// Package main provides a performance benchmarking tool for the railscan CLI.
// It generates synthetic telemetry exports of increasing size, measures
// execution times across command types, running each test multiple times,
// treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - railscan binary installed and available in PATH
// - A writable scratch directory for the generated exports
//
// Usage: go run benchmark/main.go [scratch-dir]
//
//	scratch-dir: Directory to write generated telemetry exports into
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Export      string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ScratchDir  string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	Exports     []ExportSpec
}

// ExportSpec describes one synthetic telemetry export to generate.
type ExportSpec struct {
	Name    string
	Rows    int
	Signals int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [scratch-dir]\n", os.Args[0])
		os.Exit(1)
	}
	scratchDir := os.Args[1]

	config := BenchmarkConfig{
		ScratchDir:  scratchDir,
		Timeout:     5 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Exports: []ExportSpec{
			{Name: "small", Rows: 1_000, Signals: 50},
			{Name: "medium", Rows: 10_000, Signals: 200},
			{Name: "large", Rows: 50_000, Signals: 500},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the run store using railscan store clear
	fmt.Printf("Clearing run store...\n")
	clearCmd := exec.Command("railscan", "store", "clear", "--store-backend", "sqlite")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run store cleared successfully\n")
	}

	exports, err := generateExports(config)
	if err != nil {
		fmt.Printf("Failed to generate exports: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, exports)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the railscan binary and scratch directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if railscan is available
	if _, err := exec.LookPath("railscan"); err != nil {
		return fmt.Errorf("railscan binary not found in PATH")
	}

	// Check if the scratch directory exists
	if _, err := os.Stat(config.ScratchDir); os.IsNotExist(err) {
		return fmt.Errorf("scratch directory not found at %s", config.ScratchDir)
	}

	return nil
}

// generateExports writes one synthetic telemetry export per spec and
// returns the generated file paths keyed by export name.
func generateExports(config BenchmarkConfig) (map[string]string, error) {
	paths := make(map[string]string, len(config.Exports))

	for _, spec := range config.Exports {
		path := filepath.Join(config.ScratchDir, fmt.Sprintf("railscan_bench_%s.csv", spec.Name))
		fmt.Printf("Generating %s export: %d rows x %d signals\n", spec.Name, spec.Rows, spec.Signals)
		if err := writeExport(path, spec); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", spec.Name, err)
		}
		paths[spec.Name] = path
	}

	return paths, nil
}

// writeExport writes a single export. Half the signals vary per row, half
// stay constant, so change detection has real work on both branches. The
// first seven columns carry wagon-1 timestamp components so reconstruction
// runs on the component tier.
func writeExport(path string, spec ExportSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"W_TIMESTAMP_YEAR_1", "W_TIMESTAMP_MONTH_1", "W_TIMESTAMP_DAY_1",
		"W_TIMESTAMP_HOUR_1", "W_TIMESTAMP_MINUTE_1", "W_TIMESTAMP_SECOND_1",
		"W_TIMESTAMP_SMALLSECOND_1",
	}
	for i := 0; i < spec.Signals; i++ {
		wagon := i%15 + 1
		if i%2 == 0 {
			header = append(header, fmt.Sprintf("F_SPEED_SENSOR_%d_%d", i, wagon))
		} else {
			header = append(header, fmt.Sprintf("B_DOOR_LOCKED_%d_%d", i, wagon))
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	row := make([]string, len(header))
	for r := 0; r < spec.Rows; r++ {
		ts := base.Add(time.Duration(r) * time.Second)
		row[0] = strconv.Itoa(ts.Year())
		row[1] = strconv.Itoa(int(ts.Month()))
		row[2] = strconv.Itoa(ts.Day())
		row[3] = strconv.Itoa(ts.Hour())
		row[4] = strconv.Itoa(ts.Minute())
		row[5] = strconv.Itoa(ts.Second())
		row[6] = "0"
		for i := 0; i < spec.Signals; i++ {
			if i%2 == 0 {
				row[7+i] = strconv.Itoa(r*7 + i)
			} else {
				row[7+i] = "1"
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across generated exports
func runBenchmarks(config BenchmarkConfig, exports map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d exports, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Exports), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, spec := range config.Exports {
		fmt.Printf("Benchmarking %s\n", spec.Name)
		exportPath := exports[spec.Name]

		// Parameter inventory
		result := runBenchmarkSuite(config, spec.Name, exportPath, "params", "parameter inventory", "")
		results = append(results, result)

		// Change detection
		result = runBenchmarkSuite(config, spec.Name, exportPath, "changed", "change detection", "--threshold 0.1 --limit 20")
		results = append(results, result)

		// Detailed analysis
		result = runBenchmarkSuite(config, spec.Name, exportPath, "analyze", "detailed analysis", "--threshold 0.1")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, export, exportPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, export)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, exportPath, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Export:      export,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a railscan command multiple times with the specified store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, exportPath, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, exportPath, "--store-backend", storeBackend}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("railscan", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "params":
		return strings.Contains(outputStr, "parameters")
	default:
		return strings.Contains(outputStr, "Analysis completed in")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/railscan_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"export", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Export, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "params", "Parameter Inventory:")
	printCommandSummary(results, "changed", "Change Detection:")
	printCommandSummary(results, "analyze", "Detailed Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Export, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
