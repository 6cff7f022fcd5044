package contract

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wagonlab/railscan/schema"
)

// Default values for configuration.
const (
	DefaultThreshold    = 0.1
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 3
	DefaultSamplePeriod = time.Second
)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string // Path to the telemetry CSV export

	Threshold float64   // Change-detection threshold in (0,1]
	From      time.Time // Analysis window start, zero = full range
	To        time.Time // Analysis window end, zero = full range

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool // Print per-parameter statistics columns
	Priority    bool // Expose problematic parameters to filtering

	Repair       schema.RepairMethod // Optional timestamp repair method
	SamplePeriod time.Duration       // Sampling period used by sequence repair

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Width     int  // Terminal width override (0 = auto-detect)
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	Threshold      float64 `mapstructure:"threshold"`
	FromStr        string  `mapstructure:"from"`
	ToStr          string  `mapstructure:"to"`
	Limit          int     `mapstructure:"limit"`
	Precision      int     `mapstructure:"precision"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Detail         bool    `mapstructure:"detail"`
	Priority       bool    `mapstructure:"priority"`
	Repair         string  `mapstructure:"repair"`
	SamplePeriod   string  `mapstructure:"sample-period"`
	StoreBackend   string  `mapstructure:"store-backend"`
	StoreDBConnect string  `mapstructure:"store-db-connect"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Input Path ---
	if input.InputPathStr == "" {
		return fmt.Errorf("an input CSV path is required")
	}
	if _, err := os.Stat(input.InputPathStr); err != nil {
		return fmt.Errorf("cannot read input %q: %w", input.InputPathStr, err)
	}
	cfg.InputPath = input.InputPathStr

	// --- 2. Threshold ---
	if input.Threshold <= 0 || input.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0,1] (received %g)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	// --- 3. Result Limit and Precision ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 4. Output Mode ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	switch cfg.Output {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
	default:
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	// --- 5. Analysis Window ---
	if input.FromStr != "" {
		t, err := schema.ParseTimestamp(input.FromStr)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		cfg.From = t
	}
	if input.ToStr != "" {
		t, err := schema.ParseTimestamp(input.ToStr)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		cfg.To = t
	}
	if !cfg.From.IsZero() && !cfg.To.IsZero() && !cfg.From.Before(cfg.To) {
		return fmt.Errorf("window start (%s) must be before window end (%s)",
			schema.FormatTimestamp(cfg.From), schema.FormatTimestamp(cfg.To))
	}

	// --- 6. Repair Method and Sample Period ---
	if input.Repair != "" {
		cfg.Repair = schema.RepairMethod(strings.ToLower(input.Repair))
		switch cfg.Repair {
		case schema.InterpolateRepair, schema.ForwardFillRepair, schema.SequenceRepair:
		default:
			return fmt.Errorf("invalid repair method '%s'. must be interpolate, forward_fill, sequence", input.Repair)
		}
	}
	cfg.SamplePeriod = DefaultSamplePeriod
	if input.SamplePeriod != "" {
		d, err := time.ParseDuration(input.SamplePeriod)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid sample period '%s' (want a positive Go duration, e.g. 500ms)", input.SamplePeriod)
		}
		cfg.SamplePeriod = d
	}

	// --- 7. Run Store ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	switch cfg.StoreBackend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
	case "":
		cfg.StoreBackend = schema.NoneBackend
	default:
		return fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 8. Presentation ---
	cfg.Detail = input.Detail
	cfg.Priority = input.Priority
	cfg.Width = input.Width
	cfg.UseColors = parseBoolFlag(input.Color, true)

	return nil
}

// Clone returns a shallow copy of the config for per-call overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// parseBoolFlag interprets the loose yes/no style accepted by string flags.
func parseBoolFlag(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
