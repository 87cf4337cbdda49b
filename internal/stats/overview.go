package stats

import (
	"slices"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

type (
	MonthSummary struct {
		Period         string          `json:"period"`
		ProjectID      string          `json:"projectId,omitempty"`
		Exists         bool            `json:"exists"`
		TotalBudget    decimal.Decimal `json:"totalBudget"`
		TotalSpent     decimal.Decimal `json:"totalSpent"`
		TotalRemaining decimal.Decimal `json:"totalRemaining"`
	}

	YearOverview struct {
		Year        int             `json:"year"`
		IsCollapsed bool            `json:"isCollapsed"`
		Months      []MonthSummary  `json:"months"`
		TotalBudget decimal.Decimal `json:"totalBudget"`
		TotalSpent  decimal.Decimal `json:"totalSpent"`
	}
)

// ComputeYearOverview summarizes the twelve months of a year. Months without
// a project are listed with Exists=false and zero totals.
func ComputeYearOverview(s core.Store, year int) YearOverview {
	cfg, _ := s.YearConfig(year)
	ov := YearOverview{Year: year, IsCollapsed: cfg.IsCollapsed, Months: make([]MonthSummary, 0, 12)}
	for _, p := range core.YearPeriods(year) {
		m := MonthSummary{Period: p.ID()}
		if project, ok := s.ProjectByPeriod(p); ok {
			ps := ComputeProjectStats(s, project.ID)
			m.ProjectID = project.ID
			m.Exists = true
			m.TotalBudget = ps.TotalBudget
			m.TotalSpent = ps.TotalSpent
			m.TotalRemaining = ps.TotalRemaining
			ov.TotalBudget = ov.TotalBudget.Add(ps.TotalBudget)
			ov.TotalSpent = ov.TotalSpent.Add(ps.TotalSpent)
		}
		ov.Months = append(ov.Months, m)
	}
	return ov
}

// FreeformProjects lists projects without a calendar month, newest first.
func FreeformProjects(s core.Store) []core.Project {
	var out []core.Project
	for _, p := range s.Projects {
		if _, ok := p.Period(); !ok {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
