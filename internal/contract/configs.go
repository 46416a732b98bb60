package contract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/shiftgrid/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultMaxStreak   = 7
	DefaultHistoryDays = 60
	MaxHistoryDays     = 3650
	DefaultMemoSize    = 128
	DefaultMemoTTL     = 10 * time.Minute
	DefaultDataset     = "shiftgrid.json"
	DefaultAPIAddr     = "127.0.0.1:8080"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RangeType   schema.RangeType
	Pivot       string // empty means the range containing today
	Selection   string // empty means the pivot itself
	WeekStart   time.Weekday
	Site        string
	HistoryDays int // days loaded before the visible range so streaks carry over

	SourceKind      schema.SourceKind
	DatasetPath     string
	SourceDBConnect string // Please use env var as this is plaintext

	ResultLimit int
	MaxStreak   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	MemoSize int
	MemoTTL  time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	APIAddr   string
	APISecret string // enables bearer auth on the REST API when set

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output

	// Now overrides the wall clock, mainly for tests.
	Now func() time.Time
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	RangeType         string `mapstructure:"range"`
	Pivot             string `mapstructure:"pivot"`
	Select            string `mapstructure:"select"`
	WeekStart         string `mapstructure:"week-start"`
	Site              string `mapstructure:"site"`
	HistoryDays       int    `mapstructure:"history-days"`
	Source            string `mapstructure:"source"`
	Dataset           string `mapstructure:"dataset"`
	SourceDBConnect   string `mapstructure:"source-db-connect"`
	Limit             int    `mapstructure:"limit"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	MemoSize          int    `mapstructure:"memo-size"`
	MemoTTL           string `mapstructure:"memo-ttl"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from checkCmd.Flags() ---
	MaxStreak int `mapstructure:"max-streak"`

	// --- Fields from serveCmd.Flags() ---
	APIAddr   string `mapstructure:"api-addr"`
	APISecret string `mapstructure:"api-secret"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithRange creates a copy of the Config pointed at another range.
func (c *Config) CloneWithRange(rangeType schema.RangeType, pivot, selection string) *Config {
	clone := c.Clone()
	clone.RangeType = rangeType
	clone.Pivot = pivot
	clone.Selection = selection
	return clone
}

// Clock returns the configured clock.
func (c *Config) Clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRange(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processMemo(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return errors.New("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return errors.New("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return errors.New("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return errors.New("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return fmt.Errorf("analysis-db-connect: %w", err)
		}

		// Cache and analysis tables must not share a SQLite file
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			analysisDBPath := cfg.AnalysisDBConnect
			if analysisDBPath == "" {
				analysisDBPath = GetAnalysisDBFilePath()
			}
			if cacheDBPath == analysisDBPath {
				return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates the output and limit fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Site = strings.TrimSpace(input.Site)
	cfg.APIAddr = input.APIAddr
	if cfg.APIAddr == "" {
		cfg.APIAddr = DefaultAPIAddr
	}
	cfg.APISecret = input.APISecret

	emojis, err := ParseBoolString(defaultString(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Streak threshold Validation ---
	cfg.MaxStreak = input.MaxStreak
	if cfg.MaxStreak == 0 {
		cfg.MaxStreak = DefaultMaxStreak
	}
	if cfg.MaxStreak < 2 {
		return fmt.Errorf("max-streak must be at least 2 (received %d)", input.MaxStreak)
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}

	return nil
}

// processRange validates the range type, pivot, selection and week start.
func processRange(cfg *Config, input *ConfigRawInput) error {
	cfg.RangeType = schema.RangeType(strings.ToLower(defaultString(input.RangeType, string(schema.WeeklyRange))))
	if _, ok := schema.ValidRangeTypes[cfg.RangeType]; !ok {
		return fmt.Errorf("invalid range '%s'. must be daily, weekly, biweekly, monthly: %w", input.RangeType, schema.ErrUnknownRangeType)
	}

	cfg.Pivot = strings.TrimSpace(input.Pivot)
	if cfg.Pivot != "" {
		if _, err := schema.ParsePivot(cfg.RangeType, cfg.Pivot); err != nil {
			return fmt.Errorf("invalid --pivot for %s range: %w", cfg.RangeType, err)
		}
	}
	cfg.Selection = strings.TrimSpace(input.Select)

	weekStart, err := ParseWeekStart(input.WeekStart)
	if err != nil {
		return err
	}
	cfg.WeekStart = weekStart

	cfg.HistoryDays = input.HistoryDays
	if cfg.HistoryDays < 0 || cfg.HistoryDays > MaxHistoryDays {
		return fmt.Errorf("history-days must be between 0 and %d (received %d)", MaxHistoryDays, input.HistoryDays)
	}
	return nil
}

// processSource validates where the dataset is loaded from.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.SourceKind = schema.SourceKind(strings.ToLower(defaultString(input.Source, string(schema.FileSource))))
	if _, ok := schema.ValidSourceKinds[cfg.SourceKind]; !ok {
		return fmt.Errorf("invalid source '%s'. must be file, sqlite, mysql, postgresql", input.Source)
	}

	if cfg.SourceKind == schema.FileSource {
		cfg.DatasetPath = defaultString(strings.TrimSpace(input.Dataset), DefaultDataset)
		return nil
	}

	backend, _ := cfg.SourceKind.Backend()
	cfg.SourceDBConnect = input.SourceDBConnect
	if backend == schema.SQLiteBackend && cfg.SourceDBConnect == "" {
		return errors.New("source-db-connect must name the SQLite file when using the sqlite source")
	}
	if err := ValidateDatabaseConnectionString(backend, cfg.SourceDBConnect); err != nil {
		return fmt.Errorf("source-db-connect: %w", err)
	}
	return nil
}

// processMemo validates the in-process memo sizing.
func processMemo(cfg *Config, input *ConfigRawInput) error {
	cfg.MemoSize = input.MemoSize
	if cfg.MemoSize == 0 {
		cfg.MemoSize = DefaultMemoSize
	}
	if cfg.MemoSize < 0 {
		return fmt.Errorf("memo-size must be positive (received %d)", input.MemoSize)
	}

	cfg.MemoTTL = DefaultMemoTTL
	if input.MemoTTL != "" {
		ttl, err := time.ParseDuration(input.MemoTTL)
		if err != nil {
			return fmt.Errorf("invalid --memo-ttl: %w", err)
		}
		if ttl < 0 {
			return fmt.Errorf("memo-ttl cannot be negative (received %s)", input.MemoTTL)
		}
		cfg.MemoTTL = ttl
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseWeekStart accepts "sunday" or "monday" (case-insensitive, default sunday).
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("invalid week start '%s'. must be sunday or monday", s)
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// RevalidateRange applies range overrides from an MCP or REST request and
// checks them the same way the CLI flags are checked. Empty values keep the
// base configuration. Changing the range type clears the pivot and selection,
// since their labels only make sense for one range type.
func RevalidateRange(cfg *Config, rangeType, pivot, selection, site string) error {
	if rangeType != "" {
		rt := schema.RangeType(strings.ToLower(strings.TrimSpace(rangeType)))
		if _, ok := schema.ValidRangeTypes[rt]; !ok {
			return fmt.Errorf("invalid range '%s'. must be daily, weekly, biweekly, monthly: %w", rangeType, schema.ErrUnknownRangeType)
		}
		if rt != cfg.RangeType {
			cfg.Pivot = ""
			cfg.Selection = ""
		}
		cfg.RangeType = rt
	}
	if pivot = strings.TrimSpace(pivot); pivot != "" {
		if _, err := schema.ParsePivot(cfg.RangeType, pivot); err != nil {
			return fmt.Errorf("invalid pivot for %s range: %w", cfg.RangeType, err)
		}
		cfg.Pivot = pivot
	}
	if selection = strings.TrimSpace(selection); selection != "" {
		cfg.Selection = selection
	}
	if site = strings.TrimSpace(site); site != "" {
		cfg.Site = site
	}
	return nil
}
