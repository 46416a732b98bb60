package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// SQLSource reads the personnel, site_traces and schedules tables.
type SQLSource struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ScheduleSource = &SQLSource{}

// driverName returns the database/sql driver registered for a backend.
func driverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported source backend: %s", backend)
	}
}

// NewSQLSource opens a connection to the dataset database.
func NewSQLSource(backend schema.DatabaseBackend, connStr string) (*SQLSource, error) {
	driver, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", backend, err)
	}
	return &SQLSource{db: db, backend: backend, connStr: connStr}, nil
}

// NewSQLSourceFromDB wraps an existing connection.
func NewSQLSourceFromDB(db *sql.DB, backend schema.DatabaseBackend) *SQLSource {
	return &SQLSource{db: db, backend: backend}
}

// Describe returns the backend name and, for SQLite, the file path.
func (s *SQLSource) Describe() string {
	if s.backend == schema.SQLiteBackend && s.connStr != "" {
		return fmt.Sprintf("%s:%s", s.backend, s.connStr)
	}
	return string(s.backend)
}

// Close closes the underlying connection.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

// placeholder returns the n-th (1-based) bind parameter for the backend.
func (s *SQLSource) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// dateArg binds a day the way the backend stores it: ISO text for SQLite, DATE elsewhere.
func (s *SQLSource) dateArg(d schema.Day) any {
	if s.backend == schema.SQLiteBackend {
		return d.String()
	}
	return d.Time()
}

// LoadRoster returns the personnel ordered by ID, with their site traces.
func (s *SQLSource) LoadRoster(ctx context.Context) ([]schema.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, sites, role FROM personnel ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roster []schema.Person
	index := make(map[string]int)
	for rows.Next() {
		var id string
		var name, sites, role sql.NullString
		if err := rows.Scan(&id, &name, &sites, &role); err != nil {
			return nil, fmt.Errorf("failed to scan personnel: %w", err)
		}
		index[id] = len(roster)
		roster = append(roster, schema.Person{
			ID:    id,
			Name:  name.String,
			Sites: splitSites(sites.String),
			Role:  role.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read personnel: %w", err)
	}

	if err := s.loadSiteTraces(ctx, roster, index); err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *SQLSource) loadSiteTraces(ctx context.Context, roster []schema.Person, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT personnel_id, effective_at, from_site, to_site FROM site_traces ORDER BY personnel_id, effective_at")
	if err != nil {
		return fmt.Errorf("failed to query site traces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var personID, effectiveAt string
		var from, to sql.NullString
		if err := rows.Scan(&personID, &effectiveAt, &from, &to); err != nil {
			return fmt.Errorf("failed to scan site trace: %w", err)
		}
		i, ok := index[personID]
		if !ok {
			continue
		}
		at, err := schema.ParseDay(effectiveAt)
		if err != nil {
			return fmt.Errorf("site trace for %s: %w", personID, err)
		}
		roster[i].SiteTrace = append(roster[i].SiteTrace, schema.SiteChange{EffectiveAt: at, From: from.String, To: to.String})
	}
	return rows.Err()
}

// LoadSchedules returns the entries dated from..to inclusive, ordered by person and date.
func (s *SQLSource) LoadSchedules(ctx context.Context, from, to schema.Day) ([]schema.ScheduleEntry, error) {
	query := fmt.Sprintf(
		"SELECT id, personnel_id, schedule_date, service, kind, cycle, site FROM schedules WHERE schedule_date BETWEEN %s AND %s ORDER BY personnel_id, schedule_date, id",
		s.placeholder(1), s.placeholder(2))
	rows, err := s.db.QueryContext(ctx, query, s.dateArg(from), s.dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.ScheduleEntry
	for rows.Next() {
		var id, personID, date string
		var service, kind, site sql.NullString
		var cycle sql.NullInt64
		if err := rows.Scan(&id, &personID, &date, &service, &kind, &cycle, &site); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		day, err := schema.ParseDay(date)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", id, err)
		}
		k, err := parseKind(kind.String, service.String)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", id, err)
		}
		entries = append(entries, normalizeEntry(schema.ScheduleEntry{
			ID:       id,
			PersonID: personID,
			Date:     day,
			Service:  service.String,
			Kind:     k,
			Cycle:    int(cycle.Int64),
			Site:     site.String,
		}))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}
	return entries, nil
}

// InitSchema creates the dataset tables if they do not exist.
func (s *SQLSource) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.backend) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create dataset tables: %w", err)
		}
	}
	return nil
}

func schemaStatements(backend schema.DatabaseBackend) []string {
	switch backend {
	case schema.MySQLBackend:
		return []string{
			`CREATE TABLE IF NOT EXISTS personnel (
				id VARCHAR(128) PRIMARY KEY,
				name VARCHAR(255) NOT NULL DEFAULT '',
				sites VARCHAR(1024) NOT NULL DEFAULT '',
				role VARCHAR(255) NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS site_traces (
				personnel_id VARCHAR(128) NOT NULL,
				effective_at DATE NOT NULL,
				from_site VARCHAR(255) NOT NULL DEFAULT '',
				to_site VARCHAR(255) NOT NULL DEFAULT '',
				INDEX idx_site_traces_person (personnel_id)
			)`,
			`CREATE TABLE IF NOT EXISTS schedules (
				id VARCHAR(128) PRIMARY KEY,
				personnel_id VARCHAR(128) NOT NULL,
				schedule_date DATE NOT NULL,
				service VARCHAR(255) NOT NULL DEFAULT '',
				kind VARCHAR(32),
				cycle INT,
				site VARCHAR(255),
				INDEX idx_schedules_date (schedule_date)
			)`,
		}
	case schema.PostgreSQLBackend:
		return []string{
			`CREATE TABLE IF NOT EXISTS personnel (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL DEFAULT '',
				sites TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS site_traces (
				personnel_id TEXT NOT NULL,
				effective_at DATE NOT NULL,
				from_site TEXT NOT NULL DEFAULT '',
				to_site TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS schedules (
				id TEXT PRIMARY KEY,
				personnel_id TEXT NOT NULL,
				schedule_date DATE NOT NULL,
				service TEXT NOT NULL DEFAULT '',
				kind TEXT,
				cycle INTEGER,
				site TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules (schedule_date)`,
		}
	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS personnel (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL DEFAULT '',
				sites TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS site_traces (
				personnel_id TEXT NOT NULL,
				effective_at TEXT NOT NULL,
				from_site TEXT NOT NULL DEFAULT '',
				to_site TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS schedules (
				id TEXT PRIMARY KEY,
				personnel_id TEXT NOT NULL,
				schedule_date TEXT NOT NULL,
				service TEXT NOT NULL DEFAULT '',
				kind TEXT,
				cycle INTEGER,
				site TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules (schedule_date)`,
		}
	}
}

// Import writes a dataset into the tables, replacing rows with the same ID.
func (s *SQLSource) Import(ctx context.Context, ds *schema.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	personStmt := s.upsert("personnel", []string{"id", "name", "sites", "role"})
	deleteTraces := fmt.Sprintf("DELETE FROM site_traces WHERE personnel_id = %s", s.placeholder(1))
	traceStmt := fmt.Sprintf("INSERT INTO site_traces (personnel_id, effective_at, from_site, to_site) VALUES (%s, %s, %s, %s)",
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4))
	for _, p := range ds.Personnel {
		if _, err := tx.ExecContext(ctx, personStmt, p.ID, p.Name, strings.Join(p.Sites, ","), p.Role); err != nil {
			return fmt.Errorf("failed to import person %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, deleteTraces, p.ID); err != nil {
			return fmt.Errorf("failed to reset site trace of %s: %w", p.ID, err)
		}
		for _, c := range p.SiteTrace {
			if _, err := tx.ExecContext(ctx, traceStmt, p.ID, s.dateArg(c.EffectiveAt), c.From, c.To); err != nil {
				return fmt.Errorf("failed to import site trace of %s: %w", p.ID, err)
			}
		}
	}

	entryStmt := s.upsert("schedules", []string{"id", "personnel_id", "schedule_date", "service", "kind", "cycle", "site"})
	for _, e := range ds.Schedules {
		e = normalizeEntry(e)
		if _, err := tx.ExecContext(ctx, entryStmt, e.ID, e.PersonID, s.dateArg(e.Date), e.Service, string(e.Kind), e.Cycle, e.Site); err != nil {
			return fmt.Errorf("failed to import schedule %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// upsert builds a backend-specific insert-or-replace keyed on the first column.
func (s *SQLSource) upsert(table string, columns []string) string {
	params := make([]string, len(columns))
	for i := range columns {
		params[i] = s.placeholder(i + 1)
	}
	cols := strings.Join(columns, ", ")
	vals := strings.Join(params, ", ")

	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("REPLACE INTO %s (%s) VALUES (%s)", table, cols, vals)
	case schema.PostgreSQLBackend:
		updates := make([]string, 0, len(columns)-1)
		for _, c := range columns[1:] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
			table, cols, vals, columns[0], strings.Join(updates, ", "))
	default:
		return fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)", table, cols, vals)
	}
}
