package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteParams prints the parameter inventory, dispatching based on the output format configured.
func (ow *OutWriter) WriteParams(params []schema.Parameter, report schema.LoadReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeParamJSONResults(params, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeParamCSVResults(params, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for parameter listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeParamTable(params, report, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeParamJSONResults handles opening the file and calling the JSON writer.
func writeParamJSONResults(params []schema.Parameter, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, params)
	}, "Wrote JSON")
}

// writeParamCSVResults handles opening the file and calling the CSV writer.
func writeParamCSVResults(params []schema.Parameter, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"signal_code",
			"data_type",
			"line",
			"wagon",
			"component",
			"hardware",
			"signal_parts",
			"timestamp_related",
			"problematic",
			"description",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range params {
				rec := []string{
					p.SignalCode,
					string(p.DataType),
					string(p.Line),
					p.Wagon,
					string(p.ComponentType),
					string(p.HardwareType),
					strings.Join(p.SignalParts, "|"),
					strconv.FormatBool(p.IsTimestampRelated),
					strconv.FormatBool(p.IsProblematic),
					p.Description,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeParamTable generates and writes the human-readable table.
func writeParamTable(params []schema.Parameter, report schema.LoadReport, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"#", "Signal", "Type", "Line", "Wagon", "Component"}
	if cfg.Detail {
		headers = append(headers, "Hardware", "Parts", "Flags")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i, p := range params {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateLeft(p.SignalCode, getMaxTableDescWidth(cfg)),
			string(p.DataType),
			string(p.Line),
			p.Wagon,
			string(p.ComponentType),
		}
		if cfg.Detail {
			row = append(
				row,
				string(p.HardwareType),
				strings.Join(p.SignalParts, " "),
				paramFlags(p),
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

	if _, err := fmt.Fprintf(writer, "Showing %d parameters (%d problematic) from %d rows\n",
		len(params), report.Problematic, report.Rows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Timestamp source: %s", report.Tier); err != nil {
		return err
	}
	if report.TimestampWagon != "" {
		if _, err := fmt.Fprintf(writer, " (wagon %s)", report.TimestampWagon); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// paramFlags renders the boolean markers of a parameter as a compact token list.
func paramFlags(p schema.Parameter) string {
	var flags []string
	if p.IsTimestampRelated {
		flags = append(flags, "time")
	}
	if p.IsProblematic {
		flags = append(flags, "problematic")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
