package stats

import (
	"testing"
	"time"

	"budgetpro/internal/core"
)

func TestChartBars(t *testing.T) {
	ps := ComputeProjectStats(scenarioStore(), "2026-01")
	bars := ChartBars(ps)
	if len(bars) != 2 {
		t.Fatalf("got %d bars", len(bars))
	}
	// Tallest value is the 20000 free-money budget.
	if bars[0].BudgetHeight != 100 {
		t.Fatalf("free budget height = %v", bars[0].BudgetHeight)
	}
	if bars[1].BudgetHeight != 50 || bars[1].SpentHeight != 25 {
		t.Fatalf("food heights = %v / %v", bars[1].BudgetHeight, bars[1].SpentHeight)
	}
	for _, b := range bars {
		if b.OverBudget {
			t.Fatalf("%s flagged over budget", b.Name)
		}
	}
}

func TestChartBarsEmptyAndNegative(t *testing.T) {
	s := core.Store{
		Projects:      []core.Project{{ID: "p", Name: "p"}},
		SubCategories: []core.SubCategory{{ID: "a", ProjectID: "p", Name: "a", Budget: dec(0)}},
		Transactions:  []core.Transaction{{ID: "t", Category: core.RealCategory("a"), Amount: dec(-5)}},
	}
	bars := ChartBars(ComputeProjectStats(s, "p"))
	for _, b := range bars {
		if b.BudgetHeight != 0 || b.SpentHeight != 0 {
			t.Fatalf("expected empty bars, got %+v", b)
		}
	}
}

func TestChartBarsOverBudget(t *testing.T) {
	s := scenarioStore()
	s.Transactions = append(s.Transactions, core.Transaction{ID: "big", Category: core.RealCategory("food"), Amount: dec(8000)})
	bars := ChartBars(ComputeProjectStats(s, "2026-01"))
	if !bars[1].OverBudget {
		t.Fatalf("food should be over budget")
	}
}

func TestTransactionsForNewestFirst(t *testing.T) {
	txs := TransactionsFor(scenarioStore(), core.RealCategory("food"))
	if len(txs) != 2 || txs[0].ID != "t2" || txs[1].ID != "t1" {
		t.Fatalf("unexpected order %+v", txs)
	}
	if got := TransactionsFor(scenarioStore(), core.RealCategory("none")); len(got) != 0 {
		t.Fatalf("expected none, got %d", len(got))
	}
}

func TestProjectTransactions(t *testing.T) {
	txs := ProjectTransactions(scenarioStore(), "2026-01")
	if len(txs) != 3 || txs[0].ID != "t2" || txs[1].ID != "t3" || txs[2].ID != "t1" {
		t.Fatalf("unexpected %+v", txs)
	}
}

func TestComputeYearOverview(t *testing.T) {
	s := scenarioStore()
	s.YearConfigs = []core.YearConfig{{Year: 2026, IsCollapsed: true}}
	ov := ComputeYearOverview(s, 2026)
	if len(ov.Months) != 12 || !ov.IsCollapsed {
		t.Fatalf("unexpected overview %+v", ov)
	}
	jan := ov.Months[0]
	if !jan.Exists || jan.ProjectID != "2026-01" {
		t.Fatalf("january missing: %+v", jan)
	}
	requireEqual(t, "jan remaining", jan.TotalRemaining, dec(24500))
	if ov.Months[1].Exists || ov.Months[1].Period != "2026-02" {
		t.Fatalf("february should be empty: %+v", ov.Months[1])
	}
	requireEqual(t, "year spent", ov.TotalSpent, dec(5500))
}

func TestFreeformProjectsNewestFirst(t *testing.T) {
	s := core.Store{Projects: []core.Project{
		{ID: "old", Name: "old", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2026-01", Year: 2026, Month: 1},
		{ID: "new", Name: "new", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	got := FreeformProjects(s)
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("unexpected %+v", got)
	}
}
