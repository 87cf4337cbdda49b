package worker

import (
	"context"
	"log/slog"
	"time"

	applog "budgetpro/internal/log"
)

// YearEnsurer materializes the year containing now.
type YearEnsurer interface {
	Process(ctx context.Context, now time.Time) (int, error)
}

// RunRollover processes once immediately and then on every tick until ctx is
// done. Failures are logged and retried on the next tick.
func RunRollover(ctx context.Context, p YearEnsurer, interval time.Duration, now func() time.Time) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce := func() {
		t := now()
		created, err := p.Process(ctx, t)
		if err != nil {
			slog.ErrorContext(ctx, "Rollover check failed", applog.FieldComponent, applog.ComponentRollover, applog.FieldError, err)
			return
		}
		slog.DebugContext(ctx, "Rollover check complete",
			"months_created", created,
			"next_check", t.Add(interval).Format("15:04:05"))
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
