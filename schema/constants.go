package schema

import "strings"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// RangeType represents the granularity used to bucket the calendar.
	RangeType string

	// ScheduleKind represents how a schedule entry is treated by the analytics.
	ScheduleKind string

	// WindowClass represents the 7-day continuous-window classification of a day.
	WindowClass string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// SourceKind represents where the roster and schedules are loaded from.
	SourceKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All range types supported.
const (
	DailyRange    RangeType = "daily"
	WeeklyRange   RangeType = "weekly" // default
	BiweeklyRange RangeType = "biweekly"
	MonthlyRange  RangeType = "monthly"
)

// All schedule kinds supported.
const (
	WorkKind    ScheduleKind = "work"
	DayOffKind  ScheduleKind = "day-off"
	StandbyKind ScheduleKind = "standby"
)

// Service labels with a fixed meaning.
const (
	DayOffService  = "Voluntary-Day-off"
	StandbyService = "Standby"
)

// Window classes, kept as the "1"/"2"/"3" codes consumers expect.
const (
	WindowBoundary WindowClass = "1" // first or last day of a 7-day run
	WindowInterior WindowClass = "2" // strictly inside a 7-day run
	WindowNone     WindowClass = "3"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All dataset sources supported.
const (
	FileSource       SourceKind = "file" // default
	SQLiteSource     SourceKind = "sqlite"
	MySQLSource      SourceKind = "mysql"
	PostgreSQLSource SourceKind = "postgresql"
)

// AllRangeTypes returns the range types in display order.
var AllRangeTypes = []RangeType{DailyRange, WeeklyRange, BiweeklyRange, MonthlyRange}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRangeTypes lists all valid range types.
var ValidRangeTypes = map[RangeType]struct{}{
	DailyRange:    {},
	WeeklyRange:   {},
	BiweeklyRange: {},
	MonthlyRange:  {},
}

// ValidScheduleKinds lists all valid schedule kinds.
var ValidScheduleKinds = map[ScheduleKind]struct{}{
	WorkKind:    {},
	DayOffKind:  {},
	StandbyKind: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceKinds lists all valid dataset sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	FileSource:       {},
	SQLiteSource:     {},
	MySQLSource:      {},
	PostgreSQLSource: {},
}

// KindForService maps a free-form service label to its schedule kind.
func KindForService(service string) ScheduleKind {
	switch strings.TrimSpace(service) {
	case DayOffService:
		return DayOffKind
	case StandbyService:
		return StandbyKind
	default:
		return WorkKind
	}
}

// Counts reports whether entries of this kind take part in streaks and windows.
func (k ScheduleKind) Counts() bool {
	return k != DayOffKind
}

// Backend returns the database backend that serves this source, if any.
func (s SourceKind) Backend() (DatabaseBackend, bool) {
	switch s {
	case SQLiteSource:
		return SQLiteBackend, true
	case MySQLSource:
		return MySQLBackend, true
	case PostgreSQLSource:
		return PostgreSQLBackend, true
	default:
		return "", false
	}
}
