package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/source"
	"github.com/huangsam/shiftgrid/schema"
)

// errImportTarget is returned when the configured source is not a database.
var errImportTarget = errors.New("import needs a sqlite, mysql or postgresql --source")

// ImportDataset loads the JSON dataset at path into the database source of cfg,
// creating its tables first. Rows with an existing ID are replaced.
func ImportDataset(ctx context.Context, cfg *contract.Config, path string) (*schema.Dataset, error) {
	backend, ok := cfg.SourceKind.Backend()
	if !ok {
		return nil, errImportTarget
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := source.ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	dst, err := source.NewSQLSource(backend, cfg.SourceDBConnect)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dst.Close() }()

	if err := dst.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to create dataset tables: %w", err)
	}
	if err := dst.Import(ctx, ds); err != nil {
		return nil, fmt.Errorf("failed to import dataset: %w", err)
	}
	return ds, nil
}

// ExecuteImport imports the dataset at path and reports what was written.
func ExecuteImport(ctx context.Context, w io.Writer, cfg *contract.Config, path string) error {
	ds, err := ImportDataset(ctx, cfg, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Imported %d people and %d schedule entries into %s\n", len(ds.Personnel), len(ds.Schedules), cfg.SourceKind)
	return err
}
