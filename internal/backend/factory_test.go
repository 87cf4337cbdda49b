package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"budgetpro/internal/config"
	"budgetpro/internal/core"
	sheetsmem "budgetpro/internal/sheets/memory"
)

var fixedNow = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"memory with file", Config{Type: MemoryBackend, SnapshotFile: filepath.Join(dir, "snap.json")}, false},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "budget.db")}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "sheets"}, true},
		{"spreadsheet without credentials", Config{Type: MemoryBackend, GoogleSpreadsheetID: "abc"}, true},
	}
	f := NewFactory(nil, fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreateBackend(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateBackend() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer res.Cleanup()
			if res.Publisher != nil {
				t.Error("publisher should be nil without AMQP_URL")
			}

			ctx := context.Background()
			st := core.DefaultStore(fixedNow())
			st.ThemeID = "ocean"
			if err := res.Repository.Save(ctx, st); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := res.Repository.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.ThemeID != "ocean" {
				t.Errorf("ThemeID = %q after round trip", got.ThemeID)
			}
		})
	}
}

func TestCreateExporterDefaultsToMemory(t *testing.T) {
	exp, err := NewFactory(nil, fixedNow).CreateExporter(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateExporter() error = %v", err)
	}
	if _, ok := exp.(*sheetsmem.Exporter); !ok {
		t.Errorf("exporter = %T, want memory exporter", exp)
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	app := &config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", AMQPQueue: "q"}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.AMQPQueue != "q" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
