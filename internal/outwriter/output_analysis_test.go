package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

func sampleAnalysisReport() *schema.AnalysisReport {
	changes := sampleChanges()
	return &schema.AnalysisReport{
		Threshold: 0.1,
		Window: schema.TimeRange{
			Start: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		Changed: changes[:1],
		Unchanged: []schema.ParameterChange{
			{
				Parameter: schema.Parameter{
					SignalCode: "BY_CLIMATE_MODE_3",
					FullColumn: "BY_CLIMATE_MODE_3",
					DataType:   schema.ByteType,
					Wagon:      "3",
				},
				Result: schema.ChangeResult{
					IsChanged:   false,
					ChangeScore: 0.01,
					Stats: schema.ChangeStats{
						TotalCount:  100,
						ValidCount:  100,
						UniqueCount: 1,
						UniqueRatio: 0.01,
					},
				},
			},
		},
		Skipped: 2,
	}
}

func TestWriteAnalysisTable(t *testing.T) {
	report := sampleAnalysisReport()
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		UseColors: false,
		Width:     160,
	}

	fmtFloat, _ := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeAnalysisTable(report, cfg, fmtFloat, 80*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "F_SPEED_SENSOR_1")
	assert.Contains(t, output, "BY_CLIMATE_MODE_3")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "no")
	assert.Contains(t, output, "Threshold 0.10: 1 changed, 1 unchanged, 2 skipped")
	assert.Contains(t, output, "Window: 2024-05-01 08:00:00 to 2024-05-01 09:00:00")
	assert.Contains(t, output, "Analysis completed in 80ms")
}

func TestWriteAnalysisJSON(t *testing.T) {
	report := sampleAnalysisReport()
	tmpFile := filepath.Join(t.TempDir(), "analysis.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		Precision:  2,
		OutputFile: tmpFile,
	}

	ow := NewOutWriter()
	err := ow.WriteAnalysis(report, cfg, 40*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01 08:00:00", result["window_from"])
	assert.Equal(t, "2024-05-01 09:00:00", result["window_to"])
	assert.Equal(t, 0.1, result["threshold"])
	assert.Equal(t, float64(2), result["skipped"])
	assert.Contains(t, result, "changed")
	assert.Contains(t, result, "unchanged")
}

func TestWriteAnalysisCSV(t *testing.T) {
	report := sampleAnalysisReport()
	tmpFile := filepath.Join(t.TempDir(), "analysis.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		Precision:  2,
		OutputFile: tmpFile,
	}

	ow := NewOutWriter()
	err := ow.WriteAnalysis(report, cfg, 40*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3) // header + 1 changed + 1 unchanged

	assert.Contains(t, lines[0], "signal_code")
	assert.Contains(t, lines[0], "variance")
	assert.Contains(t, lines[1], "F_SPEED_SENSOR_1")
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[2], "BY_CLIMATE_MODE_3")
	assert.Contains(t, lines[2], "false")
}

func TestWriteAnalysisParquetUnsupported(t *testing.T) {
	report := sampleAnalysisReport()
	cfg := &contract.Config{Output: schema.ParquetOut}

	ow := NewOutWriter()
	err := ow.WriteAnalysis(report, cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed command")
}
