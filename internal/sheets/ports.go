// Package sheets exports computed budget stats to spreadsheet-like sinks.
package sheets

import (
	"context"
	"time"

	"budgetpro/internal/core"
	"budgetpro/internal/stats"
)

// Row kinds in an exported report.
const (
	KindFreeMoney    = "free_money"
	KindCategory     = "category"
	KindPaymentCycle = "payment_cycle"
	KindTotal        = "total"
)

// Header is the column layout every exporter writes.
var Header = []any{"exported_at", "revision", "project_id", "project", "kind", "bucket", "budget", "spent", "remaining", "display"}

type (
	// ProjectReport is the computed state of one project at one revision.
	ProjectReport struct {
		Revision   int64
		Project    core.Project
		Stats      stats.ProjectStats
		Cycles     []stats.PaymentCycleStat
		ExportedAt time.Time
	}

	// StatsExporter writes a report and returns a reference to where it landed.
	StatsExporter interface {
		ExportProjectStats(ctx context.Context, r ProjectReport) (ref string, err error)
	}
)

// Rows flattens a report into sheet rows: one per bucket, one per payment
// method, then a totals row.
func Rows(r ProjectReport) [][]any {
	prefix := func(kind, bucket string) []any {
		return []any{r.ExportedAt.UTC().Format(time.RFC3339), r.Revision, r.Project.ID, r.Project.DisplayName(), kind, bucket}
	}
	var rows [][]any
	for _, st := range r.Stats.SubStats {
		kind := KindCategory
		if st.IsFreeMoney {
			kind = KindFreeMoney
		}
		row := append(prefix(kind, st.Emoji+" "+st.Name),
			st.Budget.String(), st.Spent.String(), st.Remaining.String(), core.FormatCurrency(st.Remaining))
		rows = append(rows, row)
	}
	for _, c := range r.Cycles {
		row := append(prefix(KindPaymentCycle, c.Emoji+" "+c.Name), "", c.Total.String(), "", core.FormatCurrency(c.Total))
		rows = append(rows, row)
	}
	total := append(prefix(KindTotal, ""),
		r.Stats.TotalBudget.String(), r.Stats.TotalSpent.String(), r.Stats.TotalRemaining.String(),
		core.FormatCurrency(r.Stats.TotalRemaining))
	return append(rows, total)
}
