package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// gridJSON is the JSON shape of a schedule grid.
type gridJSON struct {
	Range schema.RangeOption `json:"range"`
	Days  []schema.DayCell   `json:"days"`
	Rows  []schema.GridRow   `json:"rows"`
}

// WriteGridResults outputs the schedule grid, dispatching based on the output format configured.
func WriteGridResults(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, gridJSON{Range: out.Selected, Days: out.Days, Rows: out.Grid})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridCSV(w, out.Grid)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeGridParquet(out.Grid, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridTable(w, out, cfg, duration)
		}, "Wrote table")
	}
}

func writeGridTable(w io.Writer, out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Person", "Site"}
	for _, cell := range out.Days {
		headers = append(headers, dayHeader(cell.Date, len(out.Days)))
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg, len(out.Days), 12)
	var data [][]string
	for _, r := range out.Grid {
		row := []string{contract.TruncateText(r.Name, nameWidth), r.Site}
		for _, cell := range r.Cells {
			row = append(row, contract.GetCellLabel(cell, cfg.MaxStreak, cfg.UseColors))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d people over %d days (%s)\n", len(out.Grid), len(out.Days), out.Selected.Display); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

func writeGridCSV(w io.Writer, rows []schema.GridRow) error {
	header := []string{"person_id", "name", "site", "date", "week", "service", "kind", "streak", "window"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			for _, cell := range r.Cells {
				record := []string{
					r.PersonID,
					r.Name,
					r.Site,
					cell.Date.String(),
					cell.Date.ISOWeek(),
					cell.Service,
					string(cell.Kind),
					strconv.Itoa(cell.Streak),
					string(cell.Window),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}
