// Package sqlite provides the public API for the file-backed SQLite ledger.
// It exposes a factory for opening a store while keeping the implementation
// internal.
package sqlite

import (
	"context"

	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/internal/sqlite"
	"github.com/prajan97/diamond-intel/pkg/types"
)

// Store is an attached ledger together with its file-level operations.
type Store interface {
	types.Ledger

	// Path returns the location of the store file.
	Path() string
	// ExportJSONL writes one <table>.jsonl file per table into dir.
	ExportJSONL(ctx context.Context, dir string) (map[string]int, error)
	// ImportJSONL replaces the store contents with the JSONL files in dir.
	ImportJSONL(ctx context.Context, dir string) (map[string]int, error)
	// Detach releases the store. Calling it again is a no-op.
	Detach() error
}

// Open attaches a new backend to the store file described by config,
// creating the file when it does not exist. A nil logger discards output.
//
// Example:
//
//	store, err := sqlite.Open(types.Config{DataDir: "data"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Detach()
func Open(config types.Config, logger *zap.Logger) (Store, error) {
	var opts []sqlite.Option
	if logger != nil {
		opts = append(opts, sqlite.WithLogger(logger))
	}
	backend := sqlite.NewBackend(opts...)
	if err := backend.Attach(config); err != nil {
		return nil, err
	}
	return backend, nil
}
