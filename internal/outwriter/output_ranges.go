package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// rangesJSON is the JSON shape of a range listing.
type rangesJSON struct {
	Type     schema.RangeType     `json:"type"`
	Selected string               `json:"selected"`
	Options  []schema.RangeOption `json:"options"`
}

// WriteRangeOptions outputs the range options, dispatching based on the output format configured.
func WriteRangeOptions(opts schema.RangeOptions, selected schema.RangeOption, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rangesJSON{Type: opts.Type, Selected: selected.Label, Options: opts.Options})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRangesCSV(w, opts, selected)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRangesTable(w, opts, selected)
		}, "Wrote table")
	}
}

func writeRangesTable(w io.Writer, opts schema.RangeOptions, selected schema.RangeOption) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Label", "Display", "Start", "End", "Selected"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, opt := range opts.Options {
		mark := ""
		if opt.Label == selected.Label {
			mark = "*"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			opt.Label,
			opt.Display,
			opt.Start.String(),
			opt.End.String(),
			mark,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d %s ranges\n", opts.Len(), opts.Type)
	return err
}

func writeRangesCSV(w io.Writer, opts schema.RangeOptions, selected schema.RangeOption) error {
	header := []string{"label", "display", "start", "end", "selected"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, opt := range opts.Options {
			row := []string{
				opt.Label,
				opt.Display,
				opt.Start.String(),
				opt.End.String(),
				strconv.FormatBool(opt.Label == selected.Label),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// WriteDayCells outputs the flattened days, dispatching based on the output format configured.
func WriteDayCells(days []schema.DayCell, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, days)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDaysCSV(w, days)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDaysTable(w, days)
		}, "Wrote table")
	}
}

func writeDaysTable(w io.Writer, days []schema.DayCell) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Display", "Week"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range days {
		data = append(data, []string{d.Date.String(), d.Display, d.Week})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(days) > 0 && days[0].Default {
		if _, err := fmt.Fprintln(w, "Selection not found, showing the default range"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Showing %d days\n", len(days))
	return err
}

func writeDaysCSV(w io.Writer, days []schema.DayCell) error {
	header := []string{"date", "display", "week", "default"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range days {
			if err := cw.Write([]string{d.Date.String(), d.Display, d.Week, strconv.FormatBool(d.Default)}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
