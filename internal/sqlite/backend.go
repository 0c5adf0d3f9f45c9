// Package sqlite implements the diamond-intel ledger on an embedded SQLite
// engine.
//
// The working copy of the database lives in memory on a single connection.
// The store file on disk is the source of truth: it is loaded on Attach and
// rewritten in full after every committed write, using the temp-file, fsync,
// rename pattern so the file on disk is always a complete database.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// Compile-time interface check.
var _ types.Ledger = (*Backend)(nil)

// Backend implements types.Ledger. Readers share mu; every write holds it
// exclusively from the first statement until the store file is replaced.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	path     string
	db       *sqlx.DB
	sb       sq.StatementBuilderType

	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for store lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// WithClock overrides the clock used to stamp dates.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the store described by config. An existing store file is
// loaded into memory; a missing one is created with an empty schema and
// written out immediately. A file that is not a readable database is an
// error and leaves the backend detached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	path := config.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	// One long-lived connection: the in-memory database dies with it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	ctx := context.Background()
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.path = path

	if err := b.openStoreFile(ctx); err != nil {
		db.Close()
		b.db = nil
		return err
	}

	b.attached = true
	return nil
}

// openStoreFile loads the store file into the fresh in-memory database, or
// writes out a new one when there is nothing to load.
func (b *Backend) openStoreFile(ctx context.Context) error {
	existing, err := fileHasData(b.path)
	if err != nil {
		return err
	}
	if !existing {
		if err := b.persistLocked(ctx); err != nil {
			return fmt.Errorf("initializing %s: %w", b.path, err)
		}
		b.logger.Info("store created", zap.String("path", b.path))
		return nil
	}
	if err := loadDatabaseFile(ctx, b.db, b.path); err != nil {
		return fmt.Errorf("loading %s: %w", b.path, err)
	}
	b.logger.Info("store loaded", zap.String("path", b.path))
	return nil
}

// Detach closes the in-memory database. Every committed write has already
// been persisted, so nothing is flushed here. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	return nil
}

// Path returns the store file path, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	return b.path
}

func createSchema(ctx context.Context, db *sqlx.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// fileHasData reports whether path exists and is non-empty. An empty file is
// treated like a missing one.
func fileHasData(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return info.Size() > 0, nil
}

// persistLocked serializes the whole in-memory database to the store file.
// VACUUM INTO writes a complete copy to a temp file in the same directory,
// which is synced and renamed over the store file.
// The caller must hold b.mu write lock.
func (b *Backend) persistLocked(ctx context.Context) error {
	// A committed write must reach disk even if the request went away.
	ctx = context.WithoutCancel(ctx)

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".diamonds-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if _, err := b.db.ExecContext(ctx, "VACUUM INTO ?", tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("serializing store: %w", err)
	}
	if err := syncFile(tmpName); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return f.Close()
}

// today returns the current calendar date in UTC.
func (b *Backend) today() string {
	return b.now().UTC().Format(time.DateOnly)
}

// checkAttached returns ErrDetached when the backend is not attached.
// The caller must hold b.mu (read or write lock).
func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrDetached
	}
	return nil
}

// logPersistFailure records a write that committed in memory but could not
// be written to the store file.
func (b *Backend) logPersistFailure(err error) {
	b.logger.Error("store persist failed", zap.String("path", b.path), zap.Error(err))
}
