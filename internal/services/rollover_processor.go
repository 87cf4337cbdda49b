package services

import (
	"context"
	"log/slog"
	"time"

	applog "budgetpro/internal/log"
)

// RolloverProcessor keeps the current calendar year materialized so a new
// January exists without user action.
type RolloverProcessor struct {
	service *BudgetService
}

func NewRolloverProcessor(service *BudgetService) *RolloverProcessor {
	return &RolloverProcessor{service: service}
}

// Process ensures the year of now exists and returns the months it created.
func (p *RolloverProcessor) Process(ctx context.Context, now time.Time) (int, error) {
	created, err := p.service.EnsureYear(ctx, now.Year())
	if err != nil {
		slog.ErrorContext(ctx, "Year rollover failed",
			applog.FieldComponent, applog.ComponentRollover,
			applog.FieldYear, now.Year(),
			applog.FieldError, err)
		return 0, err
	}
	if created > 0 {
		slog.InfoContext(ctx, "Year rollover materialized months",
			applog.FieldComponent, applog.ComponentRollover,
			applog.FieldYear, now.Year(),
			"created", created)
	} else {
		slog.DebugContext(ctx, "Year already materialized", applog.FieldYear, now.Year())
	}
	return created, nil
}
