package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetpro/internal/amqp"
	"budgetpro/internal/sheets"
	gsheet "budgetpro/internal/sheets/google"
	sheetsmem "budgetpro/internal/sheets/memory"
	"budgetpro/internal/snapshot"
	snapmem "budgetpro/internal/snapshot/memory"
	"budgetpro/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewFactory returns a Factory. now seeds default snapshots; nil means
// time.Now.
func NewFactory(logger *slog.Logger, now func() time.Time) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &DefaultFactory{logger: logger, now: now}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		repo snapshot.Repository
		err  error
	)
	switch config.Type {
	case SQLiteBackend:
		repo, err = f.createSQLiteRepository(config)
	case MemoryBackend:
		repo, err = f.createMemoryRepository(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	result := &BackendResult{Repository: repo, Cleanup: repo.Close}
	if config.AMQPURL == "" {
		return result, nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change notifications", "error", err)
		return result, nil
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	result.Publisher = client
	return result, nil
}

func (f *DefaultFactory) createSQLiteRepository(config Config) (snapshot.Repository, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.now)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return repo, nil
}

func (f *DefaultFactory) createMemoryRepository(config Config) (snapshot.Repository, error) {
	if config.SnapshotFile == "" {
		f.logger.Info("Initialized memory backend without persistence")
		return snapmem.New(f.now), nil
	}
	repo, err := snapmem.NewFromFile(config.SnapshotFile, f.now)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}
	f.logger.Info("Initialized memory backend", "snapshot_file", config.SnapshotFile)
	return repo, nil
}

// CreateExporter returns the Google Sheets exporter when a spreadsheet is
// configured and the in-memory one otherwise.
func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (sheets.StatsExporter, error) {
	if config.GoogleSpreadsheetID == "" {
		f.logger.InfoContext(ctx, "No spreadsheet configured, exporting stats in memory")
		return sheetsmem.New(), nil
	}
	client, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		SheetName:       config.GoogleSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets exporter: %w", err)
	}
	f.logger.InfoContext(ctx, "Initialized Google Sheets exporter",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet", config.GoogleSheetName)
	return client, nil
}
