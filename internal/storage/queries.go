package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type SnapshotRow struct {
	Revision  int64
	Data      string
	UpdatedAt string
}

const getSnapshot = `SELECT revision, data, updated_at FROM snapshots WHERE id = 1`

func (q *Queries) GetSnapshot(ctx context.Context) (SnapshotRow, error) {
	var row SnapshotRow
	err := q.db.QueryRowContext(ctx, getSnapshot).Scan(&row.Revision, &row.Data, &row.UpdatedAt)
	return row, err
}

const upsertSnapshot = `
INSERT INTO snapshots (id, revision, data, updated_at) VALUES (1, 1, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    revision   = snapshots.revision + 1,
    data       = excluded.data,
    updated_at = excluded.updated_at
RETURNING revision`

func (q *Queries) UpsertSnapshot(ctx context.Context, data, updatedAt string) (int64, error) {
	var revision int64
	err := q.db.QueryRowContext(ctx, upsertSnapshot, data, updatedAt).Scan(&revision)
	return revision, err
}
