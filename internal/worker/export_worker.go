package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetpro/internal/amqp"
	"budgetpro/internal/core"
	applog "budgetpro/internal/log"
	"budgetpro/internal/sheets"
	"budgetpro/internal/snapshot"
	"budgetpro/internal/stats"
)

// ExportWorker turns snapshot change notifications into stats reports.
type ExportWorker struct {
	loader      snapshot.Loader
	exporter    sheets.StatsExporter
	concurrency int
	now         func() time.Time
}

func NewExportWorker(loader snapshot.Loader, exporter sheets.StatsExporter, concurrency int, now func() time.Time) *ExportWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	if now == nil {
		now = time.Now
	}
	return &ExportWorker{
		loader:      loader,
		exporter:    exporter,
		concurrency: concurrency,
		now:         now,
	}
}

// HandleSnapshotChanged exports every project named in msg. A message without
// project ids exports all months of the current year. Projects that no longer
// exist are skipped.
func (w *ExportWorker) HandleSnapshotChanged(ctx context.Context, msg *amqp.SnapshotChangedMessage) error {
	slog.InfoContext(ctx, "Processing snapshot change",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldRevision, msg.Revision,
		applog.FieldOperation, msg.Operation,
		"projects", len(msg.ProjectIDs))

	st, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	ids := msg.ProjectIDs
	if len(ids) == 0 {
		ids = yearProjects(st, w.now().Year())
	}
	return w.export(ctx, st, msg.Revision, ids)
}

// ExportYear exports every month of year. Used at startup to refresh the
// sheet after downtime.
func (w *ExportWorker) ExportYear(ctx context.Context, year int) error {
	st, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return w.export(ctx, st, 0, yearProjects(st, year))
}

func (w *ExportWorker) export(ctx context.Context, st core.Store, revision int64, ids []string) error {
	var exported, skipped atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, id := range ids {
		project, ok := st.Project(id)
		if !ok {
			skipped.Add(1)
			slog.DebugContext(ctx, "Skipping export of missing project", applog.FieldProjectID, id)
			continue
		}
		g.Go(func() error {
			report := sheets.ProjectReport{
				Revision:   revision,
				Project:    project,
				Stats:      stats.ComputeProjectStats(st, project.ID),
				Cycles:     stats.ComputePaymentCycleStats(st, project.ID),
				ExportedAt: w.now(),
			}
			ref, err := w.exporter.ExportProjectStats(gctx, report)
			if err != nil {
				return fmt.Errorf("export project %s: %w", project.ID, err)
			}
			exported.Add(1)
			slog.DebugContext(gctx, "Project stats exported", applog.FieldProjectID, project.ID, "sheets_ref", ref)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "Stats export failed", applog.FieldRevision, revision, applog.FieldError, err)
		return err
	}

	slog.InfoContext(ctx, "Stats export completed",
		applog.FieldRevision, revision,
		"exported", exported.Load(),
		"skipped", skipped.Load())
	return nil
}

func yearProjects(st core.Store, year int) []string {
	var ids []string
	for _, p := range core.YearPeriods(year) {
		if proj, ok := st.ProjectByPeriod(p); ok {
			ids = append(ids, proj.ID)
		}
	}
	return ids
}
