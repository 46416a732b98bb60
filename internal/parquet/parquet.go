// Package parquet provides data structures and functions for exporting shiftgrid
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/shiftgrid/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the shiftgrid_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RunUUID identifies the run across databases
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPersonsAnalyzed is the number of roster members analyzed in this run
	TotalPersonsAnalyzed int32 `parquet:"total_persons_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PersonSummary represents one person's results in an analysis run.
// This struct maps to the shiftgrid_person_summaries database table.
type PersonSummary struct {
	AnalysisID    int64   `parquet:"analysis_id,snappy"`
	PersonID      string  `parquet:"person_id,snappy"`
	PersonName    string  `parquet:"person_name,snappy"`
	Site          *string `parquet:"site,optional,snappy"`
	ScheduledDays int32   `parquet:"scheduled_days,snappy"`
	MaxStreak     int32   `parquet:"max_streak,snappy"`
	LastStreak    int32   `parquet:"last_streak,snappy"`
	BoundaryDays  int32   `parquet:"boundary_days,snappy"`
	InteriorDays  int32   `parquet:"interior_days,snappy"`
}

// DayRow is one person on one visible day, flattened from the grid.
type DayRow struct {
	PersonID string `parquet:"person_id,snappy,dict"`
	Name     string `parquet:"name,snappy,dict"`
	Site     string `parquet:"site,snappy,dict"`

	// Date is the ISO calendar date
	Date    string `parquet:"date,snappy"`
	Week    string `parquet:"week,snappy,dict"`
	Service string `parquet:"service,snappy,dict"`
	Kind    string `parquet:"kind,snappy,dict"`
	Streak  int32  `parquet:"streak,snappy"`

	// Window is the continuous-window class code
	Window string `parquet:"window,snappy,dict"`
}

// Write encodes rows of T to w using the schema inferred from T's struct tags.
func Write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile creates outputPath and writes rows of T to it.
func WriteFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WritePersonSummariesParquet writes a slice of PersonSummary structs to a Parquet file.
func WritePersonSummariesParquet(data []PersonSummary, outputPath string) error {
	return WriteFile(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:           record.AnalysisID,
			RunUUID:              record.RunUUID,
			StartTime:            record.StartTime,
			EndTime:              record.EndTime,
			RunDurationMs:        record.RunDurationMs,
			TotalPersonsAnalyzed: record.TotalPersons,
			ConfigParams:         record.ConfigParams,
		}
	}
	return result
}

// ConvertPersonSummaryRecords converts schema.PersonSummaryRecord to PersonSummary for Parquet export.
func ConvertPersonSummaryRecords(records []schema.PersonSummaryRecord) []PersonSummary {
	result := make([]PersonSummary, len(records))
	for i, record := range records {
		result[i] = PersonSummary{
			AnalysisID:    record.AnalysisID,
			PersonID:      record.PersonID,
			PersonName:    record.PersonName,
			Site:          record.Site,
			ScheduledDays: record.ScheduledDays,
			MaxStreak:     record.MaxStreak,
			LastStreak:    record.LastStreak,
			BoundaryDays:  record.BoundaryDays,
			InteriorDays:  record.InteriorDays,
		}
	}
	return result
}

// ConvertGridRows flattens grid rows into one DayRow per person and day.
func ConvertGridRows(rows []schema.GridRow) []DayRow {
	var result []DayRow
	for _, row := range rows {
		for _, cell := range row.Cells {
			result = append(result, DayRow{
				PersonID: row.PersonID,
				Name:     row.Name,
				Site:     row.Site,
				Date:     cell.Date.String(),
				Week:     cell.Date.ISOWeek(),
				Service:  cell.Service,
				Kind:     string(cell.Kind),
				Streak:   int32(cell.Streak),
				Window:   string(cell.Window),
			})
		}
	}
	return result
}
