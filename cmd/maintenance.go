package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

// storeBackend reads the "<prefix>-backend" and "<prefix>-db-connect" settings,
// falling back when the backend is unset, and validates the pair.
func storeBackend(prefix string, fallback schema.DatabaseBackend) (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString(prefix + "-backend")))
	if backend == "" {
		backend = fallback
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid %s backend '%s'. must be sqlite, mysql, postgresql, none", prefix, backend)
	}
	connStr := viper.GetString(prefix + "-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", fmt.Errorf("%s-db-connect: %w", prefix, err)
	}
	return backend, connStr, nil
}

// cacheSetup opens only the result cache, skipping dataset and range validation.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, connStr, err := storeBackend("cache", schema.SQLiteBackend)
	if err != nil {
		return err
	}
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to open result cache: %w", err)
	}
	cfg.CacheBackend, cfg.CacheDBConnect = backend, connStr
	return nil
}

// analysisSetup opens only the analysis store, skipping dataset and range validation.
func analysisSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, connStr, err := storeBackend("analysis", schema.NoneBackend)
	if err != nil {
		return err
	}
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to open analysis store: %w", err)
	}
	cfg.AnalysisBackend, cfg.AnalysisDBConnect = backend, connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// migrateSetup resolves the analysis backend without opening it, so migrations
// can run against an empty database.
func migrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, connStr, err := storeBackend("analysis", schema.NoneBackend)
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}
	cfg.AnalysisBackend, cfg.AnalysisDBConnect = backend, connStr
	return nil
}
