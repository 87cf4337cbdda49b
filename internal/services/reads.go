package services

import (
	"budgetpro/internal/core"
	"budgetpro/internal/stats"
)

func (s *BudgetService) Project(id string) (core.Project, error) {
	p, ok := s.Snapshot().Project(id)
	if !ok {
		return core.Project{}, notFound("project", id)
	}
	return p, nil
}

func (s *BudgetService) ProjectStats(id string) (stats.ProjectStats, error) {
	st := s.Snapshot()
	if _, ok := st.Project(id); !ok {
		return stats.ProjectStats{}, notFound("project", id)
	}
	return stats.ComputeProjectStats(st, id), nil
}

func (s *BudgetService) PaymentCycleStats(id string) ([]stats.PaymentCycleStat, error) {
	st := s.Snapshot()
	if _, ok := st.Project(id); !ok {
		return nil, notFound("project", id)
	}
	return stats.ComputePaymentCycleStats(st, id), nil
}

func (s *BudgetService) Chart(id string) ([]stats.ChartBar, error) {
	ps, err := s.ProjectStats(id)
	if err != nil {
		return nil, err
	}
	return stats.ChartBars(ps), nil
}

// History lists a category's transactions, newest first.
func (s *BudgetService) History(ref core.CategoryRef) ([]core.Transaction, error) {
	st := s.Snapshot()
	if _, ok := st.ProjectOf(ref); !ok {
		return nil, notFound("category", ref.String())
	}
	return stats.TransactionsFor(st, ref), nil
}

func (s *BudgetService) ProjectTransactions(id string) ([]core.Transaction, error) {
	st := s.Snapshot()
	if _, ok := st.Project(id); !ok {
		return nil, notFound("project", id)
	}
	return stats.ProjectTransactions(st, id), nil
}

// Overview returns every known year, newest first, plus freeform projects.
func (s *BudgetService) Overview() ([]stats.YearOverview, []core.Project) {
	st := s.Snapshot()
	years := st.Years()
	out := make([]stats.YearOverview, 0, len(years))
	for _, y := range years {
		out = append(out, stats.ComputeYearOverview(st, y))
	}
	return out, stats.FreeformProjects(st)
}
