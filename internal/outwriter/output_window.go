package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// windowsJSON is the JSON shape of a window classification.
type windowsJSON struct {
	Range  schema.RangeOption           `json:"range"`
	Status map[string]map[string]string `json:"status"`
}

// WriteWindowResults outputs the window classification, dispatching based on the output format configured.
func WriteWindowResults(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, windowsJSON{Range: out.Selected, Status: out.Status.Keyed()})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWindowsCSV(w, out)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeGridParquet(out.Grid, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWindowsTable(w, out, cfg, duration)
		}, "Wrote table")
	}
}

func writeWindowsTable(w io.Writer, out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Person", "Site"}
	for _, cell := range out.Days {
		headers = append(headers, dayHeader(cell.Date, len(out.Days)))
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg, len(out.Days), 8)
	boundary, interior := 0, 0
	var data [][]string
	for _, s := range out.Summaries {
		row := []string{contract.TruncateText(s.Name, nameWidth), s.Site}
		classes := out.Status[s.PersonID]
		for _, cell := range out.Days {
			class := classes[cell.Date]
			if cfg.UseColors {
				row = append(row, contract.GetColorLabel(class))
			} else {
				row = append(row, contract.GetPlainLabel(class))
			}
		}
		boundary += s.BoundaryDays
		interior += s.InteriorDays
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d people (edge days: %d, inside days: %d)\n", len(out.Summaries), boundary, interior); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

func writeWindowsCSV(w io.Writer, out *schema.AnalysisOutput) error {
	header := []string{"person_id", "name", "site", "date", "window", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range out.Summaries {
			classes := out.Status[s.PersonID]
			for _, cell := range out.Days {
				class := classes[cell.Date]
				row := []string{s.PersonID, s.Name, s.Site, cell.Date.String(), string(class), contract.GetPlainLabel(class)}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}
