// Package source loads rosters and schedule entries from a JSON dataset file
// or a SQL database.
package source

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// entryNamespace scopes the generated IDs of schedule entries that arrive without one.
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("shiftgrid.schedule-entry"))

// New returns the schedule source selected by the configuration.
func New(cfg *contract.Config) (contract.ScheduleSource, error) {
	switch cfg.SourceKind {
	case schema.FileSource, "":
		return NewFileSource(cfg.DatasetPath), nil
	default:
		backend, ok := cfg.SourceKind.Backend()
		if !ok {
			return nil, fmt.Errorf("unsupported source: %s", cfg.SourceKind)
		}
		return NewSQLSource(backend, cfg.SourceDBConnect)
	}
}

// EntryID derives a stable ID from the fields that identify an entry, so
// repeated loads of the same data produce the same memo signatures.
func EntryID(personID string, date schema.Day, service string) string {
	name := strings.Join([]string{personID, date.String(), service}, "|")
	return uuid.NewSHA1(entryNamespace, []byte(name)).String()
}

// normalizeEntry fills the derived fields of an entry.
func normalizeEntry(e schema.ScheduleEntry) schema.ScheduleEntry {
	e.Service = strings.TrimSpace(e.Service)
	if e.ID == "" {
		e.ID = EntryID(e.PersonID, e.Date, e.Service)
	}
	e.Kind = e.EffectiveKind()
	if e.Cycle <= 0 {
		e.Cycle = 1
	}
	return e
}

// parseKind validates an explicit kind, deriving it from the service when empty.
// The day-off service label overrides any explicit kind.
func parseKind(kind, service string) (schema.ScheduleKind, error) {
	if kind == "" || service == schema.DayOffService {
		return schema.KindForService(service), nil
	}
	k := schema.ScheduleKind(strings.ToLower(strings.TrimSpace(kind)))
	if _, ok := schema.ValidScheduleKinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", schema.ErrUnknownKind, kind)
	}
	return k, nil
}

// splitSites parses a comma separated site list.
func splitSites(s string) []string {
	var sites []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			sites = append(sites, p)
		}
	}
	return sites
}

// inRange filters entries dated from..to inclusive.
func inRange(entries []schema.ScheduleEntry, from, to schema.Day) []schema.ScheduleEntry {
	out := make([]schema.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out
}
