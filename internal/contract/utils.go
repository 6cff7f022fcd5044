package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Change-magnitude label constants.
const (
	StrongValue   = "Strong"   // Strong change
	ClearValue    = "Clear"    // Clear change
	WeakValue     = "Weak"     // Weak change
	MarginalValue = "Marginal" // Barely above threshold
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgRed, color.Bold)     // strongColor flags the most volatile signals.
	ClearColor    = color.New(color.FgMagenta, color.Bold) // clearColor flags unambiguous changes.
	WeakColor     = color.New(color.FgYellow)              // weakColor flags mild variation, not bold.
	MarginalColor = color.New(color.FgCyan)                // marginalColor flags low-priority signals.
)

// GetPlainLabel returns a plain text label for a change score in [0,1].
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.8:
		return StrongValue
	case score >= 0.5:
		return ClearValue
	case score >= 0.2:
		return WeakValue
	default:
		return MarginalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ClearValue:
		return ClearColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default: // "Marginal"
		return MarginalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is set.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for run tracking.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".railscan_runs.db"
	}
	return filepath.Join(homeDir, ".railscan_runs.db")
}

// TruncateLeft shortens a string to max characters, keeping the tail and
// prefixing an ellipsis, mirroring how long column names are shown in tables.
func TruncateLeft(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[len(s)-max:]
	}
	return "..." + s[len(s)-(max-3):]
}
