package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// streaksJSON is the JSON shape of a streak analysis.
type streaksJSON struct {
	Range     schema.RangeOption        `json:"range"`
	Summaries []schema.PersonSummary    `json:"summaries"`
	Streaks   map[string]map[string]int `json:"streaks"`
}

// WriteStreakResults outputs the streak results, dispatching based on the output format configured.
func WriteStreakResults(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, streaksJSON{Range: out.Selected, Summaries: out.Summaries, Streaks: out.Streaks.Keyed()})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStreaksCSV(w, out)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeGridParquet(out.Grid, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStreaksTable(w, out, cfg, duration)
		}, "Wrote table")
	}
}

// compactStreaks renders a person's streak on each visible day as a single string.
func compactStreaks(days map[schema.Day]int, visible []schema.DayCell, limit int, useColors bool) string {
	parts := make([]string, 0, len(visible))
	for _, cell := range visible {
		parts = append(parts, contract.GetStreakLabel(days[cell.Date], limit, useColors))
	}
	return strings.Join(parts, " ")
}

func writeStreaksTable(w io.Writer, out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Person", "Site", "Days", "Max", "Last", "Streaks"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg, len(out.Days), 3)
	var data [][]string
	for i, s := range out.Summaries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(s.Name, nameWidth),
			s.Site,
			strconv.Itoa(s.ScheduledDays),
			contract.GetStreakLabel(s.MaxStreak, cfg.MaxStreak, cfg.UseColors),
			contract.GetStreakLabel(s.LastStreak, cfg.MaxStreak, cfg.UseColors),
			compactStreaks(out.Streaks[s.PersonID], out.Days, cfg.MaxStreak, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d of %d people for %s\n", len(out.Summaries), len(out.Roster), out.Selected.Label); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

func writeStreaksCSV(w io.Writer, out *schema.AnalysisOutput) error {
	header := []string{"person_id", "name", "site", "date", "streak"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range out.Summaries {
			days := out.Streaks[s.PersonID]
			for _, cell := range out.Days {
				streak, ok := days[cell.Date]
				if !ok {
					continue
				}
				row := []string{s.PersonID, s.Name, s.Site, cell.Date.String(), strconv.Itoa(streak)}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}
