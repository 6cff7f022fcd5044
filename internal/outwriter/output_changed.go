package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/internal/parquet"
	"github.com/wagonlab/railscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChanged prints ranked change results, dispatching based on the output format configured.
func (ow *OutWriter) WriteChanged(changes []schema.ParameterChange, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeChangedJSONResults(changes, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeChangedCSVResults(changes, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		rows := parquet.ConvertParameterChanges(changes, time.Now())
		if err := parquet.WriteParameterChangesParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChangedTable(changes, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeChangedJSONResults handles opening the file and calling the JSON writer.
func writeChangedJSONResults(changes []schema.ParameterChange, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		// Prepare the data structure for JSON with rank and label added
		type JSONChange struct {
			Rank  int    `json:"rank"`
			Label string `json:"label"`
			schema.ParameterChange
		}

		output := make([]JSONChange, len(changes))
		for i, c := range changes {
			output[i] = JSONChange{
				Rank:            i + 1,
				Label:           contract.GetPlainLabel(c.Result.ChangeScore),
				ParameterChange: c,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeChangedCSVResults handles opening the file and calling the CSV writer.
func writeChangedCSVResults(changes []schema.ParameterChange, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"signal_code",
			"score",
			"label",
			"data_type",
			"wagon",
			"component",
			"numeric",
			"unique_values",
			"unique_ratio",
			"mean",
			"std",
			"coefficient_of_variation",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, c := range changes {
				s := c.Result.Stats
				rec := []string{
					strconv.Itoa(i + 1),
					c.Parameter.SignalCode,
					fmtFloat(c.Result.ChangeScore),
					contract.GetPlainLabel(c.Result.ChangeScore),
					string(c.Parameter.DataType),
					c.Parameter.Wagon,
					string(c.Parameter.ComponentType),
					strconv.FormatBool(s.IsNumeric),
					fmt.Sprintf(intFmt, s.UniqueCount),
					fmtFloat(s.UniqueRatio),
					fmtFloat(s.Mean),
					fmtFloat(s.Std),
					fmtFloat(s.CoV),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeChangedTable generates and writes the human-readable table.
func writeChangedTable(changes []schema.ParameterChange, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	label := labelFunc(cfg)

	headers := []string{"Rank", "Signal", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Unique", "Ratio", "Mean", "Std", "CoV")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, c := range changes {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateLeft(c.Parameter.SignalCode, getMaxTableDescWidth(cfg)),
			fmtFloat(c.Result.ChangeScore),
			label(c.Result.ChangeScore),
		}
		if cfg.Detail {
			s := c.Result.Stats
			row = append(
				row,
				strconv.Itoa(s.UniqueCount),
				fmtFloat(s.UniqueRatio),
				fmtFloat(s.Mean),
				fmtFloat(s.Std),
				fmtFloat(s.CoV),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	numChanged := len(changes)
	numNumeric := 0
	for _, c := range changes {
		if c.Result.Stats.IsNumeric {
			numNumeric++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d changed parameters (%d numeric)\n", numChanged, numNumeric); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
