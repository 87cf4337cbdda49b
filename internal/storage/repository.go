// Package storage persists the budget snapshot in a single SQLite row.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetpro/internal/core"
	"budgetpro/internal/snapshot"

	_ "modernc.org/sqlite"
)

var _ snapshot.Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string, now func() time.Time) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("SQLite snapshot store ready", "path", dbPath, "schema_version", version)

	return &SQLiteRepository{db: db, queries: New(db), now: now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements snapshot.Loader.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Store, error) {
	s, _, err := r.LoadRevision(ctx)
	return s, err
}

// LoadRevision returns the stored snapshot and how many times it has been
// saved. An empty table yields the default store at revision 0.
func (r *SQLiteRepository) LoadRevision(ctx context.Context) (core.Store, int64, error) {
	row, err := r.queries.GetSnapshot(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultStore(r.now()), 0, nil
	}
	if err != nil {
		return core.Store{}, 0, fmt.Errorf("get snapshot: %w", err)
	}
	s, err := snapshot.Decode([]byte(row.Data), r.now())
	if err != nil {
		slog.WarnContext(ctx, "Discarding unreadable snapshot", "revision", row.Revision, "error", err)
	}
	return s, row.Revision, nil
}

// Save implements snapshot.Saver.
func (r *SQLiteRepository) Save(ctx context.Context, s core.Store) error {
	data, err := snapshot.Encode(s)
	if err != nil {
		return err
	}
	revision, err := r.queries.UpsertSnapshot(ctx, string(data), r.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	slog.DebugContext(ctx, "Snapshot saved to SQLite", "revision", revision, "bytes", len(data))
	return nil
}
