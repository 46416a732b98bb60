package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend              string           `json:"backend"`
	Connected            bool             `json:"connected"`
	TotalRuns            int              `json:"total_runs"`
	LastRunID            int64            `json:"last_run_id"`
	LastRunTime          time.Time        `json:"last_run_time"`
	OldestRunTime        time.Time        `json:"oldest_run_time"`
	TotalPersonsAnalyzed int              `json:"total_persons_analyzed"`
	TableSizes           map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the shiftgrid_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalPersons  int32
	ConfigParams  *string
}

// PersonSummaryRecord represents a row from the shiftgrid_person_summaries table.
type PersonSummaryRecord struct {
	AnalysisID    int64
	PersonID      string
	PersonName    string
	Site          *string
	ScheduledDays int32
	MaxStreak     int32
	LastStreak    int32
	BoundaryDays  int32
	InteriorDays  int32
}
