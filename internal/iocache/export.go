package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/parquet"
)

// ExecuteAnalysisExport writes the analysis history of store to Parquet files
// named after outputFile.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total person records: %d\n", status.TableSizes[personSummariesTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	summaries, err := store.GetAllPersonSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve person summaries: %w", err)
	}

	parquetRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	parquetSummaries := parquet.ConvertPersonSummaryRecords(summaries)
	summariesFile := outputFile + ".person_summaries.parquet"
	if err := parquet.WritePersonSummariesParquet(parquetSummaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write person summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d person summaries to: %s\n", len(parquetSummaries), summariesFile)

	return nil
}
