package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagonlab/railscan/schema"
)

func TestAnalysisRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(AnalysisRun))
	require.NotNil(t, pqSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"total_parameters",
		"changed_parameters",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestParameterChangeRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(ParameterChangeRow))
	require.NotNil(t, pqSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"signal_code",
		"evaluated_at",
		"data_type",
		"wagon",
		"is_changed",
		"change_score",
		"is_numeric",
		"unique_count",
		"unique_ratio",
		"mean",
		"std",
		"coefficient_of_variation",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func sampleRuns() []AnalysisRun {
	now := time.Now()
	endTime := now.Add(90 * time.Second)
	config := `{"threshold":0.1,"limit":25}`
	wagonless := `{"threshold":0.3}`

	return []AnalysisRun{
		{
			RunID:             1,
			StartTime:         now,
			EndTime:           &endTime,
			TotalParameters:   120,
			ChangedParameters: 14,
			ConfigParams:      &config,
		},
		{
			RunID:             2,
			StartTime:         now.Add(time.Hour),
			EndTime:           nil,
			TotalParameters:   0,
			ChangedParameters: 0,
			ConfigParams:      &wagonless,
		},
		{
			RunID:             3,
			StartTime:         now.Add(2 * time.Hour),
			EndTime:           nil,
			TotalParameters:   0,
			ChangedParameters: 0,
			ConfigParams:      nil,
		},
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "analysis_runs.parquet")

	data := sampleRuns()

	err := WriteAnalysisRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[AnalysisRun](file)
	defer reader.Close()

	readData := make([]AnalysisRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].TotalParameters, readData[i].TotalParameters, "TotalParameters should match")
		assert.Equal(t, data[i].ChangedParameters, readData[i].ChangedParameters, "ChangedParameters should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteParameterChangesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "parameter_results.parquet")

	now := time.Now()
	wagon := "1"
	data := []ParameterChangeRow{
		{
			RunID:       1,
			SignalCode:  "F_SPEED_SENSOR_1",
			EvaluatedAt: now,
			DataType:    "F",
			Wagon:       &wagon,
			IsChanged:   true,
			ChangeScore: 0.92,
			IsNumeric:   true,
			UniqueCount: 80,
			UniqueRatio: 0.816,
			Mean:        54.2,
			Std:         12.8,
			CoV:         0.236,
		},
		{
			RunID:       1,
			SignalCode:  "DW_HEADER_COUNTER",
			EvaluatedAt: now,
			DataType:    "DW",
			Wagon:       nil,
			IsChanged:   false,
			ChangeScore: 0.02,
			IsNumeric:   true,
			UniqueCount: 2,
			UniqueRatio: 0.02,
		},
	}

	err := WriteParameterChangesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[ParameterChangeRow](file)
	defer reader.Close()

	readData := make([]ParameterChangeRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].SignalCode, readData[i].SignalCode, "SignalCode should match")
		assert.Equal(t, data[i].DataType, readData[i].DataType, "DataType should match")
		assert.Equal(t, data[i].IsChanged, readData[i].IsChanged, "IsChanged should match")
		assert.InDelta(t, data[i].ChangeScore, readData[i].ChangeScore, 0.001, "ChangeScore should match")
		assert.Equal(t, data[i].UniqueCount, readData[i].UniqueCount, "UniqueCount should match")
		assert.InDelta(t, data[i].CoV, readData[i].CoV, 0.001, "CoV should match")

		// Check nullable Wagon field
		if data[i].Wagon == nil {
			assert.Nil(t, readData[i].Wagon, "Wagon should be nil")
		} else {
			require.NotNil(t, readData[i].Wagon, "Wagon should not be nil")
			assert.Equal(t, *data[i].Wagon, *readData[i].Wagon, "Wagon should match")
		}
	}
}

func TestWriteAnalysisRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_analysis_runs.parquet")

	err := WriteAnalysisRunsParquet([]AnalysisRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParameterChangesParquet_InvalidPath(t *testing.T) {
	err := WriteParameterChangesParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertParameterChanges(t *testing.T) {
	evaluatedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	changes := []schema.ParameterChange{
		{
			Parameter: schema.Parameter{
				SignalCode: "F_SPEED_SENSOR_1",
				DataType:   schema.FloatType,
				Wagon:      "1",
			},
			Result: schema.ChangeResult{
				IsChanged:   true,
				ChangeScore: 0.92,
				Stats: schema.ChangeStats{
					UniqueCount: 80,
					UniqueRatio: 0.816,
					IsNumeric:   true,
					Mean:        54.2,
					Std:         12.8,
					CoV:         0.236,
				},
			},
		},
		{
			Parameter: schema.Parameter{
				SignalCode: "DW_HEADER_COUNTER",
				DataType:   schema.DoubleWordType,
			},
			Result: schema.ChangeResult{
				IsChanged:   false,
				ChangeScore: 0.02,
			},
		},
	}

	rows := ConvertParameterChanges(changes, evaluatedAt)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, int64(0), first.RunID, "untracked rows carry run ID zero")
	assert.Equal(t, "F_SPEED_SENSOR_1", first.SignalCode)
	assert.Equal(t, evaluatedAt, first.EvaluatedAt)
	assert.Equal(t, "F", first.DataType)
	require.NotNil(t, first.Wagon)
	assert.Equal(t, "1", *first.Wagon)
	assert.True(t, first.IsChanged)
	assert.Equal(t, int32(80), first.UniqueCount)
	assert.Equal(t, 0.236, first.CoV)

	second := rows[1]
	assert.Equal(t, "DW_HEADER_COUNTER", second.SignalCode)
	assert.Nil(t, second.Wagon, "wagon-less parameters stay null")
	assert.False(t, second.IsChanged)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	endTime := now.Add(time.Minute)
	config := `{"threshold":0.1}`

	records := []schema.AnalysisRunRecord{
		{
			RunID:             7,
			StartTime:         now,
			EndTime:           &endTime,
			TotalParameters:   50,
			ChangedParameters: 5,
			ConfigParams:      &config,
		},
		{
			RunID:     8,
			StartTime: now,
		},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)

	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, int32(50), runs[0].TotalParameters)
	assert.Equal(t, int32(5), runs[0].ChangedParameters)
	require.NotNil(t, runs[0].EndTime)
	assert.Equal(t, endTime, *runs[0].EndTime)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Equal(t, config, *runs[0].ConfigParams)

	assert.Equal(t, int64(8), runs[1].RunID)
	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].ConfigParams)
}
