package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ppecli/pkg/contracts/domain"
)

// WriteReport renders every table of report to w
func WriteReport(w io.Writer, f Format, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatCSV:
		var records [][]string
		for _, inst := range domain.Instruments {
			records = append(records, PPERecords(report.Tables[inst])...)
		}
		return WriteCSV(w, WriteOptions{Headers: PPEHeaders(), Records: records})
	case FormatText:
		for i, inst := range domain.Instruments {
			rows, ok := report.Tables[inst]
			if !ok {
				continue
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (%s) as of %s\n", inst.Name(), inst, report.AsOf.Format("2006-01-02"))
			if err := writeText(w, PPEHeaders()[1:], trimFirst(PPERecords(rows))); err != nil {
				return err
			}
		}
		if len(report.Missing) > 0 {
			fmt.Fprintf(w, "\nmissing quotes: %s\n", strings.Join(report.Missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// runDocument is the single JSON value written for a report with its
// sensitivity grids
type runDocument struct {
	*domain.Report
	Sensitivity []domain.SensitivityTable `json:"sensitivity"`
}

// WriteRun renders report followed by tables. JSON output is one document
// with the grids under "sensitivity"; text and csv print each grid after a
// blank line.
func WriteRun(w io.Writer, f Format, report *domain.Report, tables []domain.SensitivityTable) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	if f == FormatJSON {
		if tables == nil {
			tables = []domain.SensitivityTable{}
		}
		return writeJSON(w, runDocument{Report: report, Sensitivity: tables})
	}

	if err := WriteReport(w, f, report); err != nil {
		return err
	}
	for _, t := range tables {
		fmt.Fprintln(w)
		if err := WriteSensitivity(w, f, t); err != nil {
			return fmt.Errorf("render sensitivity: %w", err)
		}
	}
	return nil
}

// WriteSensitivity renders a sensitivity table to w
func WriteSensitivity(w io.Writer, f Format, t domain.SensitivityTable) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatCSV:
		return WriteCSV(w, WriteOptions{Headers: SensitivityHeaders(t), Records: SensitivityRecords(t)})
	case FormatText:
		fmt.Fprintf(w, "%s sensitivity, premium %s\n", t.Instrument.Name(), domain.Some(t.Premium))
		return writeText(w, SensitivityHeaders(t), SensitivityRecords(t))
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(w io.Writer, headers []string, records [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(rec, "\t")+"\t")
	}
	return tw.Flush()
}

// trimFirst drops the instrument column, which the text heading already names
func trimFirst(records [][]string) [][]string {
	out := make([][]string, len(records))
	for i, rec := range records {
		out[i] = rec[1:]
	}
	return out
}
