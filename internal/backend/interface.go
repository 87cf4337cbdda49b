package backend

import (
	"context"

	"budgetpro/internal/services"
	"budgetpro/internal/sheets"
	"budgetpro/internal/snapshot"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult bundles the ports a process needs. Publisher is nil when
// change notifications are disabled.
type BackendResult struct {
	Repository snapshot.Repository
	Publisher  services.ChangePublisher
	Cleanup    CleanupFunc
}

// Factory builds backends from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	CreateExporter(ctx context.Context, config Config) (sheets.StatsExporter, error)
}

type Config struct {
	Type BackendType

	// memory
	SnapshotFile string

	// sqlite
	SQLiteDBPath string

	// Change notifications, optional for either backend.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Stats export. An empty spreadsheet id selects the in-memory exporter.
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
