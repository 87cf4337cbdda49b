package propagation

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
	"budgetpro/internal/stats"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seqIDs() core.IDGenerator {
	n := 0
	return core.IDFunc(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
}

var defaults = PeriodDefaults{
	TotalBudget: dec(30000),
	Emoji:       "📅",
	CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

// yearWithFood materializes 2026 and gives every month a "food" category.
func yearWithFood(t *testing.T) core.Store {
	t.Helper()
	s := EnsureYearExists(core.DefaultStore(defaults.CreatedAt), 2026, defaults)
	s = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2026-01", Name: "food", Emoji: "🍜", Budget: dec(10000)})
	if n := len(s.SubCategories); n != 12 {
		t.Fatalf("expected 12 food categories, got %d", n)
	}
	return s
}

func categoryIn(s core.Store, projectID, name string) (core.SubCategory, bool) {
	for _, c := range s.CategoriesOf(projectID) {
		if c.Name == name {
			return c, true
		}
	}
	return core.SubCategory{}, false
}

func TestEditPropagatesForwardOnly(t *testing.T) {
	s := yearWithFood(t)
	june, _ := categoryIn(s, "2026-06", "food")

	out := PropagateCategoryEdit(s, seqIDs(), CategoryEdit{
		ProjectID: "2026-06", CategoryID: june.ID, Name: "groceries", Emoji: "🛒", Budget: dec(12000),
	})

	for m := 1; m <= 12; m++ {
		pid := core.Period{Year: 2026, Month: m}.ID()
		if m < 6 {
			c, ok := categoryIn(out, pid, "food")
			if !ok || !c.Budget.Equal(dec(10000)) || c.Emoji != "🍜" {
				t.Fatalf("%s was modified: %+v", pid, c)
			}
			continue
		}
		c, ok := categoryIn(out, pid, "groceries")
		if !ok || !c.Budget.Equal(dec(12000)) || c.Emoji != "🛒" {
			t.Fatalf("%s not updated: %+v", pid, c)
		}
	}
	if _, ok := categoryIn(s, "2026-06", "food"); !ok {
		t.Fatalf("input store was mutated")
	}
}

func TestEditIsIdempotent(t *testing.T) {
	s := yearWithFood(t)
	march, _ := categoryIn(s, "2026-03", "food")
	edit := CategoryEdit{ProjectID: "2026-03", CategoryID: march.ID, Name: "food", Emoji: "🍱", Budget: dec(9000)}

	once := PropagateCategoryEdit(s, seqIDs(), edit)
	twice := PropagateCategoryEdit(once, seqIDs(), edit)
	if len(once.SubCategories) != len(twice.SubCategories) {
		t.Fatalf("category count changed")
	}
	for i := range once.SubCategories {
		a, b := once.SubCategories[i], twice.SubCategories[i]
		if a.ID != b.ID || a.Name != b.Name || !a.Budget.Equal(b.Budget) || a.Emoji != b.Emoji {
			t.Fatalf("second application changed %+v to %+v", a, b)
		}
	}
}

// withGroceries adds an unrelated "groceries" category to March on top of
// the food series.
func withGroceries(t *testing.T) core.Store {
	t.Helper()
	s := yearWithFood(t)
	s.SubCategories = append(s.SubCategories, core.SubCategory{ID: "groceries-03", ProjectID: "2026-03", Name: "groceries", Budget: dec(500)})
	return s
}

func TestRenameOntoExistingNameIsIdempotent(t *testing.T) {
	s := withGroceries(t)
	jan, _ := categoryIn(s, "2026-01", "food")
	edit := CategoryEdit{ProjectID: "2026-01", CategoryID: jan.ID, Name: "groceries", Emoji: "🥬", Budget: dec(7000)}

	once := PropagateCategoryEdit(s, seqIDs(), edit)
	twice := PropagateCategoryEdit(once, seqIDs(), edit)

	for _, st := range []core.Store{once, twice} {
		g, ok := st.SubCategory("groceries-03")
		if !ok || !g.Budget.Equal(dec(500)) || g.Emoji != "" {
			t.Fatalf("unrelated groceries changed: %+v", g)
		}
	}
	if len(once.SubCategories) != len(twice.SubCategories) {
		t.Fatalf("category count changed")
	}
	for i := range once.SubCategories {
		a, b := once.SubCategories[i], twice.SubCategories[i]
		if a.ID != b.ID || a.Name != b.Name || a.SeriesID != b.SeriesID || !a.Budget.Equal(b.Budget) || a.Emoji != b.Emoji {
			t.Fatalf("second application changed %+v to %+v", a, b)
		}
	}
	renamed := 0
	for _, c := range once.SubCategories {
		if c.ID != "groceries-03" && c.Name == "groceries" && c.Budget.Equal(dec(7000)) {
			renamed++
		}
	}
	if renamed != 12 {
		t.Errorf("expected the 12 food categories renamed, got %d", renamed)
	}
}

func TestDeleteAfterRenameKeepsUnrelatedCategory(t *testing.T) {
	s := withGroceries(t)
	jan, _ := categoryIn(s, "2026-01", "food")
	s = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2026-01", CategoryID: jan.ID, Name: "groceries", Budget: dec(7000)})

	out := DeleteCategory(s, jan.ID)
	if len(out.SubCategories) != 1 {
		t.Fatalf("expected only the unrelated groceries to survive, got %+v", out.SubCategories)
	}
	if _, ok := out.SubCategory("groceries-03"); !ok {
		t.Fatal("unrelated groceries was deleted")
	}
}

func TestAddAfterRenameStartsNewSeries(t *testing.T) {
	s := yearWithFood(t)
	jan, _ := categoryIn(s, "2026-01", "food")
	s = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2026-01", CategoryID: jan.ID, Name: "groceries", Budget: dec(7000)})
	n := 0
	readd := core.IDFunc(func() string {
		n++
		return fmt.Sprintf("readd-%d", n)
	})
	s = PropagateCategoryEdit(s, readd, CategoryEdit{ProjectID: "2026-06", Name: "food", Budget: dec(100)})

	june, ok := categoryIn(s, "2026-06", "food")
	if !ok {
		t.Fatal("food was not re-added")
	}
	if june.Series() == jan.Series() {
		t.Fatalf("re-added food joined the renamed series %q", june.Series())
	}
	s = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2026-06", CategoryID: june.ID, Name: "food", Budget: dec(200)})
	for _, c := range s.SubCategories {
		if c.Name == "groceries" && !c.Budget.Equal(dec(7000)) {
			t.Fatalf("editing the new food series reached %+v", c)
		}
	}
}

func TestAddRecurringIsIdempotent(t *testing.T) {
	s := yearWithFood(t)
	add := CategoryEdit{ProjectID: "2026-10", Name: "gifts", Emoji: "🎁", Budget: dec(2000)}
	once := PropagateCategoryEdit(s, seqIDs(), add)
	if got := len(once.SubCategories) - len(s.SubCategories); got != 3 {
		t.Fatalf("expected gifts in Oct-Dec, got %d new", got)
	}
	if _, ok := categoryIn(once, "2026-09", "gifts"); ok {
		t.Fatalf("gifts leaked into the past")
	}
	twice := PropagateCategoryEdit(once, seqIDs(), add)
	if len(twice.SubCategories) != len(once.SubCategories) {
		t.Fatalf("re-adding duplicated categories")
	}
}

func TestEditUnknownTargetsAreNoOps(t *testing.T) {
	s := yearWithFood(t)
	out := PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2030-01", Name: "x"})
	if len(out.SubCategories) != len(s.SubCategories) {
		t.Fatalf("unknown project changed store")
	}
	out = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "2026-01", CategoryID: "missing", Name: "x"})
	for i := range s.SubCategories {
		if out.SubCategories[i].Name != s.SubCategories[i].Name {
			t.Fatalf("unknown category changed store")
		}
	}
}

func TestFreeformEditStaysLocal(t *testing.T) {
	s := core.Store{
		Projects: []core.Project{
			{ID: "trip", Name: "trip", TotalBudget: dec(5000)},
			{ID: "move", Name: "move", TotalBudget: dec(8000)},
			{ID: "2026-01", Year: 2026, Month: 1, TotalBudget: dec(30000)},
		},
		SubCategories: []core.SubCategory{
			{ID: "a", ProjectID: "trip", Name: "food", Budget: dec(100)},
			{ID: "b", ProjectID: "move", Name: "food", Budget: dec(100)},
		},
	}
	out := PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "trip", CategoryID: "a", Name: "meals", Budget: dec(200)})
	if c, _ := out.SubCategory("b"); c.Name != "food" {
		t.Fatalf("edit leaked to another freeform project")
	}
	out = PropagateCategoryEdit(s, seqIDs(), CategoryEdit{ProjectID: "trip", Name: "hotel", Budget: dec(1)})
	if len(out.SubCategories) != 3 || out.SubCategories[2].ProjectID != "trip" {
		t.Fatalf("add leaked beyond the freeform project: %+v", out.SubCategories)
	}
	out = PropagateProjectBudget(s, "trip", dec(1))
	if p, _ := out.Project("move"); !p.TotalBudget.Equal(dec(8000)) {
		t.Fatalf("budget leaked to another freeform project")
	}
	if p, _ := out.Project("2026-01"); !p.TotalBudget.Equal(dec(30000)) {
		t.Fatalf("budget leaked to a month")
	}
}

func TestPropagateProjectBudget(t *testing.T) {
	s := EnsureYearExists(core.Store{}, 2026, defaults)
	s = EnsureYearExists(s, 2027, defaults)
	out := PropagateProjectBudget(s, "2026-11", dec(45000))
	for _, p := range out.Projects {
		per, _ := p.Period()
		want := dec(30000)
		if !per.Before(core.Period{Year: 2026, Month: 11}) {
			want = dec(45000)
		}
		if !p.TotalBudget.Equal(want) {
			t.Fatalf("%s budget %s, want %s", p.ID, p.TotalBudget, want)
		}
	}
	if same := PropagateProjectBudget(s, "nope", dec(1)); len(same.Projects) != len(s.Projects) {
		t.Fatalf("unknown project changed store")
	}
}

func TestEnsureYearExists(t *testing.T) {
	s := EnsureYearExists(core.Store{}, 2026, defaults)
	if len(s.Projects) != 12 || len(s.YearConfigs) != 1 {
		t.Fatalf("got %d projects, %d configs", len(s.Projects), len(s.YearConfigs))
	}
	if s.Projects[0].ID != "2026-01" || s.Projects[11].ID != "2026-12" {
		t.Fatalf("unexpected ids %s..%s", s.Projects[0].ID, s.Projects[11].ID)
	}

	s = PropagateProjectBudget(s, "2026-05", dec(1234))
	again := EnsureYearExists(s, 2026, PeriodDefaults{TotalBudget: dec(1)})
	if len(again.Projects) != 12 || len(again.YearConfigs) != 1 {
		t.Fatalf("second call duplicated records")
	}
	if p, _ := again.Project("2026-05"); !p.TotalBudget.Equal(dec(1234)) {
		t.Fatalf("existing budget reset to %s", p.TotalBudget)
	}
}

func TestEnsureYearFillsGaps(t *testing.T) {
	s := core.Store{Projects: []core.Project{{ID: "2026-04", Year: 2026, Month: 4, TotalBudget: dec(7)}}}
	if got := len(MissingPeriods(s, 2026)); got != 11 {
		t.Fatalf("missing = %d", got)
	}
	out := EnsureYearExists(s, 2026, defaults)
	if len(out.Projects) != 12 || len(MissingPeriods(out, 2026)) != 0 {
		t.Fatalf("year not complete")
	}
	if p, _ := out.Project("2026-04"); !p.TotalBudget.Equal(dec(7)) {
		t.Fatalf("existing month changed")
	}
}

func TestEndCurrentYear(t *testing.T) {
	s := EnsureYearExists(core.Store{}, 2026, defaults)
	out := EndCurrentYear(s, defaults)
	if len(out.Projects) != 24 {
		t.Fatalf("expected 2027 to be materialized, got %d projects", len(out.Projects))
	}
	for _, y := range out.YearConfigs {
		if y.Year == 2026 && !y.IsCollapsed {
			t.Fatalf("2026 not collapsed")
		}
		if y.Year == 2027 && y.IsCollapsed {
			t.Fatalf("new year collapsed")
		}
	}
	empty := EndCurrentYear(core.Store{}, defaults)
	if _, ok := empty.Project("2027-01"); !ok {
		t.Fatalf("empty store should roll over from the defaults year")
	}
}

func TestEndCurrentYearCollapsesYearsWithoutConfig(t *testing.T) {
	s := EnsureYearExists(core.Store{}, 2025, defaults)
	s = EnsureYearExists(s, 2026, defaults)
	s.YearConfigs = []core.YearConfig{{Year: 2026}}

	out := EndCurrentYear(s, defaults)
	for _, year := range []int{2025, 2026} {
		y, ok := out.YearConfig(year)
		if !ok || !y.IsCollapsed {
			t.Errorf("year %d config = %+v (ok=%v), want collapsed", year, y, ok)
		}
	}
	if y, ok := out.YearConfig(2027); !ok || y.IsCollapsed {
		t.Errorf("2027 config = %+v (ok=%v), want open", y, ok)
	}
	if len(s.YearConfigs) != 1 {
		t.Errorf("input store was modified: %+v", s.YearConfigs)
	}
}

func TestSetYearCollapsed(t *testing.T) {
	s := SetYearCollapsed(core.Store{}, 2026, true)
	if c, ok := s.YearConfig(2026); !ok || !c.IsCollapsed {
		t.Fatalf("not registered")
	}
	s = SetYearCollapsed(s, 2026, false)
	if c, _ := s.YearConfig(2026); c.IsCollapsed || len(s.YearConfigs) != 1 {
		t.Fatalf("not toggled")
	}
}

func TestDeleteCategoryScenario(t *testing.T) {
	s := core.Store{
		Projects:      []core.Project{{ID: "2026-01", Year: 2026, Month: 1, TotalBudget: dec(30000)}},
		SubCategories: []core.SubCategory{{ID: "food", ProjectID: "2026-01", Name: "food", Budget: dec(10000)}},
		Transactions: []core.Transaction{
			{ID: "t1", Category: core.RealCategory("food"), Amount: dec(3000)},
			{ID: "t2", Category: core.RealCategory("food"), Amount: dec(2000)},
			{ID: "t3", Category: core.FreeMoney("2026-01"), Amount: dec(500)},
		},
	}
	out := DeleteCategory(s, "food")
	if len(out.Transactions) != 1 || out.Transactions[0].ID != "t3" {
		t.Fatalf("unexpected transactions %+v", out.Transactions)
	}
	ps := stats.ComputeProjectStats(out, "2026-01")
	if len(ps.SubStats) != 1 || !ps.SubStats[0].Budget.Equal(dec(30000)) {
		t.Fatalf("free money should be back to 30000: %+v", ps.SubStats)
	}
}

func TestDeleteCategoryCascadesForward(t *testing.T) {
	s := yearWithFood(t)
	for m := 1; m <= 12; m++ {
		pid := core.Period{Year: 2026, Month: m}.ID()
		c, _ := categoryIn(s, pid, "food")
		s.Transactions = append(s.Transactions, core.Transaction{ID: "tx-" + pid, Category: core.RealCategory(c.ID), Amount: dec(1)})
	}
	aug, _ := categoryIn(s, "2026-08", "food")
	out := DeleteCategory(s, aug.ID)

	if len(out.SubCategories) != 7 || len(out.Transactions) != 7 {
		t.Fatalf("expected Jan-Jul to survive, got %d categories, %d transactions", len(out.SubCategories), len(out.Transactions))
	}
	for _, tx := range out.Transactions {
		if _, ok := out.SubCategory(tx.Category.CategoryID()); !ok {
			t.Fatalf("orphaned transaction %s", tx.ID)
		}
	}
}

func TestDeleteYearCascade(t *testing.T) {
	s := yearWithFood(t)
	s = EnsureYearExists(s, 2027, defaults)
	jan, _ := categoryIn(s, "2026-01", "food")
	s.SubCategories = append(s.SubCategories, core.SubCategory{ID: "keep", ProjectID: "2027-01", Name: "rent"})
	s.Transactions = []core.Transaction{
		{ID: "a", Category: core.RealCategory(jan.ID)},
		{ID: "b", Category: core.FreeMoney("2026-03")},
		{ID: "c", Category: core.FreeMoney("2027-03")},
		{ID: "d", Category: core.RealCategory("keep")},
	}

	out := DeleteYear(s, 2026)
	if _, ok := out.YearConfig(2026); ok {
		t.Fatalf("year config survived")
	}
	for _, p := range out.Projects {
		if p.Year == 2026 {
			t.Fatalf("project %s survived", p.ID)
		}
	}
	if len(out.SubCategories) != 1 || out.SubCategories[0].ID != "keep" {
		t.Fatalf("categories: %+v", out.SubCategories)
	}
	if len(out.Transactions) != 2 || out.Transactions[0].ID != "c" || out.Transactions[1].ID != "d" {
		t.Fatalf("transactions: %+v", out.Transactions)
	}
	if len(out.PaymentMethods) != len(s.PaymentMethods) {
		t.Fatalf("payment methods changed")
	}
}

func TestDeleteProject(t *testing.T) {
	s := core.Store{
		Projects: []core.Project{{ID: "trip", Name: "trip"}, {ID: "move", Name: "move"}},
		SubCategories: []core.SubCategory{
			{ID: "a", ProjectID: "trip", Name: "food"},
			{ID: "b", ProjectID: "move", Name: "food"},
		},
		Transactions: []core.Transaction{
			{ID: "1", Category: core.RealCategory("a")},
			{ID: "2", Category: core.FreeMoney("trip")},
			{ID: "3", Category: core.RealCategory("b")},
		},
	}
	out := DeleteProject(s, "trip")
	if len(out.Projects) != 1 || len(out.SubCategories) != 1 || len(out.Transactions) != 1 || out.Transactions[0].ID != "3" {
		t.Fatalf("unexpected result %+v", out)
	}
	if same := DeleteProject(s, "nope"); len(same.Projects) != 2 {
		t.Fatalf("unknown project deleted something")
	}
}
