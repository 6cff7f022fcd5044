package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnalysis prints the detailed analysis report, dispatching based on the output format configured.
func (ow *OutWriter) WriteAnalysis(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAnalysisJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAnalysisCSVResults(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for analysis reports; use the changed command")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAnalysisJSONResults handles opening the file and calling the JSON writer.
func writeAnalysisJSONResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONReport struct {
			From string `json:"window_from"`
			To   string `json:"window_to"`
			*schema.AnalysisReport
		}
		return writeJSON(w, JSONReport{
			From:           schema.FormatTimestamp(report.Window.Start),
			To:             schema.FormatTimestamp(report.Window.End),
			AnalysisReport: report,
		})
	}, "Wrote JSON")
}

// writeAnalysisCSVResults handles opening the file and calling the CSV writer.
// Changed and unchanged parameters share one flat record shape.
func writeAnalysisCSVResults(report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"signal_code",
			"changed",
			"score",
			"numeric",
			"total_values",
			"valid_values",
			"unique_values",
			"unique_ratio",
			"min",
			"max",
			"mean",
			"std",
			"variance",
			"range",
			"coefficient_of_variation",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			writeGroup := func(group []schema.ParameterChange) error {
				for _, c := range group {
					s := c.Result.Stats
					rec := []string{
						c.Parameter.SignalCode,
						strconv.FormatBool(c.Result.IsChanged),
						fmtFloat(c.Result.ChangeScore),
						strconv.FormatBool(s.IsNumeric),
						fmt.Sprintf(intFmt, s.TotalCount),
						fmt.Sprintf(intFmt, s.ValidCount),
						fmt.Sprintf(intFmt, s.UniqueCount),
						fmtFloat(s.UniqueRatio),
						fmtFloat(s.Min),
						fmtFloat(s.Max),
						fmtFloat(s.Mean),
						fmtFloat(s.Std),
						fmtFloat(s.Variance),
						fmtFloat(s.Range),
						fmtFloat(s.CoV),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			}
			if err := writeGroup(report.Changed); err != nil {
				return err
			}
			return writeGroup(report.Unchanged)
		})
	}, "Wrote CSV")
}

// writeAnalysisTable generates and writes the human-readable report.
func writeAnalysisTable(report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	label := labelFunc(cfg)

	table.Header([]string{"Signal", "Changed", "Score", "Label", "Numeric", "Unique", "Ratio", "Std"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	appendGroup := func(group []schema.ParameterChange) {
		for _, c := range group {
			s := c.Result.Stats
			data = append(data, []string{
				contract.TruncateLeft(c.Parameter.SignalCode, getMaxTableDescWidth(cfg)),
				yesNo(c.Result.IsChanged),
				fmtFloat(c.Result.ChangeScore),
				label(c.Result.ChangeScore),
				yesNo(s.IsNumeric),
				strconv.Itoa(s.UniqueCount),
				fmtFloat(s.UniqueRatio),
				fmtFloat(s.Std),
			})
		}
	}
	appendGroup(report.Changed)
	appendGroup(report.Unchanged)

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Threshold %s: %d changed, %d unchanged, %d skipped\n",
		fmtFloat(report.Threshold), len(report.Changed), len(report.Unchanged), report.Skipped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Window: %s to %s\n",
		schema.FormatTimestamp(report.Window.Start), schema.FormatTimestamp(report.Window.End)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
