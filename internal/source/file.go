package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// personRecord is a roster member as written in a dataset file.
type personRecord struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Sites     []string           `json:"sites"`
	Site      string             `json:"site"` // single-site shorthand
	Role      string             `json:"role"`
	SiteTrace []siteChangeRecord `json:"siteTrace"`
}

type siteChangeRecord struct {
	EffectiveAt string `json:"effectiveAt"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// entryRecord is a schedule entry as written in a dataset file.
type entryRecord struct {
	ID       string `json:"id"`
	PersonID string `json:"personId"`
	Date     string `json:"date"`
	Service  string `json:"service"`
	Kind     string `json:"kind"`
	Cycle    int    `json:"cycle"`
	Site     string `json:"site"`
}

type datasetFile struct {
	Personnel []personRecord `json:"personnel"`
	Schedules []entryRecord  `json:"schedules"`
}

// FileSource reads a JSON dataset file. The file is parsed once and reused.
type FileSource struct {
	path string

	mu      sync.Mutex
	dataset *schema.Dataset
}

var _ contract.ScheduleSource = &FileSource{}

// NewFileSource creates a source for the dataset file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Describe returns the dataset path.
func (s *FileSource) Describe() string {
	return s.path
}

// LoadRoster returns the personnel in file order.
func (s *FileSource) LoadRoster(ctx context.Context) ([]schema.Person, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Personnel, nil
}

// LoadSchedules returns the entries dated from..to inclusive, ordered by person and date.
func (s *FileSource) LoadSchedules(ctx context.Context, from, to schema.Day) ([]schema.ScheduleEntry, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return inRange(ds.Schedules, from, to), nil
}

// Reload drops the parsed dataset so the next load reads the file again.
func (s *FileSource) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
}

func (s *FileSource) load(ctx context.Context) (*schema.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dataset != nil {
		return s.dataset, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", s.path, err)
	}
	s.dataset = ds
	return ds, nil
}

// ParseDataset decodes a JSON dataset. Entries with a date in none of the
// accepted layouts are rejected with schema.ErrInvalidDate.
func ParseDataset(data []byte) (*schema.Dataset, error) {
	var raw datasetFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ds := &schema.Dataset{
		Personnel: make([]schema.Person, 0, len(raw.Personnel)),
		Schedules: make([]schema.ScheduleEntry, 0, len(raw.Schedules)),
	}
	seen := make(map[string]struct{}, len(raw.Personnel))
	for i, rec := range raw.Personnel {
		if rec.ID == "" {
			return nil, fmt.Errorf("personnel[%d]: missing id", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("personnel[%d]: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		p, err := rec.toPerson()
		if err != nil {
			return nil, fmt.Errorf("personnel[%d]: %w", i, err)
		}
		ds.Personnel = append(ds.Personnel, p)
	}

	for i, rec := range raw.Schedules {
		e, err := rec.toEntry()
		if err != nil {
			return nil, fmt.Errorf("schedules[%d]: %w", i, err)
		}
		ds.Schedules = append(ds.Schedules, e)
	}
	sort.SliceStable(ds.Schedules, func(i, j int) bool {
		if ds.Schedules[i].PersonID != ds.Schedules[j].PersonID {
			return ds.Schedules[i].PersonID < ds.Schedules[j].PersonID
		}
		return ds.Schedules[i].Date < ds.Schedules[j].Date
	})
	return ds, nil
}

func (r personRecord) toPerson() (schema.Person, error) {
	p := schema.Person{ID: r.ID, Name: r.Name, Sites: r.Sites, Role: r.Role}
	if len(p.Sites) == 0 && r.Site != "" {
		p.Sites = []string{r.Site}
	}
	for _, c := range r.SiteTrace {
		at, err := schema.ParseDay(c.EffectiveAt)
		if err != nil {
			return schema.Person{}, fmt.Errorf("site trace: %w", err)
		}
		p.SiteTrace = append(p.SiteTrace, schema.SiteChange{EffectiveAt: at, From: c.From, To: c.To})
	}
	sort.SliceStable(p.SiteTrace, func(i, j int) bool {
		return p.SiteTrace[i].EffectiveAt < p.SiteTrace[j].EffectiveAt
	})
	return p, nil
}

func (r entryRecord) toEntry() (schema.ScheduleEntry, error) {
	if r.PersonID == "" {
		return schema.ScheduleEntry{}, errors.New("missing personId")
	}
	date, err := schema.ParseDay(r.Date)
	if err != nil {
		return schema.ScheduleEntry{}, err
	}
	kind, err := parseKind(r.Kind, r.Service)
	if err != nil {
		return schema.ScheduleEntry{}, err
	}
	return normalizeEntry(schema.ScheduleEntry{
		ID:       r.ID,
		PersonID: r.PersonID,
		Date:     date,
		Service:  r.Service,
		Kind:     kind,
		Cycle:    r.Cycle,
		Site:     r.Site,
	}), nil
}
