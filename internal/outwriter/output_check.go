package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// WriteCheckResult outputs the compliance report, dispatching based on the output format configured.
func WriteCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, duration)
		}, "Wrote report")
	}
}

// writeCheckText prints the result in a concise format suitable for CI/CD.
func writeCheckText(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	if err := writeCheckHeader(w, result, duration); err != nil {
		return err
	}
	if result.Passed {
		_, err := fmt.Fprintf(w, "✅ No streak reached %d days (longest: %d)\n", result.MaxStreak, result.Longest)
		return err
	}

	if _, err := fmt.Fprintf(w, "❌ Streak check failed: %d violation(s) found across %d people\n\n", len(result.Violations), result.TotalPersons); err != nil {
		return err
	}
	for _, v := range result.Violations {
		site := v.Site
		if site == "" {
			site = contract.NoneValue
		}
		if _, err := fmt.Fprintf(w, "  %s (%s, %s): %d days from %s to %s\n", v.Name, v.PersonID, site, v.Streak, v.Start, v.End); err != nil {
			return err
		}
	}
	return nil
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, "Streak Check Results:"); err != nil {
		return err
	}

	// Define labels and values for dynamic padding
	labels := []string{"Range:", "Window:", "Limit:"}
	values := []any{
		result.RangeLabel,
		fmt.Sprintf("%s -> %s", result.Start, result.End),
		fmt.Sprintf("%d consecutive days", result.MaxStreak),
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nChecked %d people in %v\n\n", result.TotalPersons, duration)
	return err
}

func writeCheckCSV(w io.Writer, result *schema.CheckResult) error {
	header := []string{"person_id", "name", "site", "streak", "start", "end"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range result.Violations {
			row := []string{v.PersonID, v.Name, v.Site, strconv.Itoa(v.Streak), v.Start.String(), v.End.String()}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
