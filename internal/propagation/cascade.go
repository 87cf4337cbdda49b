package propagation

import (
	"budgetpro/internal/core"
)

// Removal is the set of ids a cascade delete drops. It is gathered bottom-up
// before the new snapshot is built.
type Removal struct {
	Projects     map[string]bool
	Categories   map[string]bool
	Transactions map[string]bool
	Years        map[int]bool
}

func newRemoval() Removal {
	return Removal{
		Projects:     map[string]bool{},
		Categories:   map[string]bool{},
		Transactions: map[string]bool{},
		Years:        map[int]bool{},
	}
}

// Empty reports whether the removal drops nothing.
func (r Removal) Empty() bool {
	return len(r.Projects) == 0 && len(r.Categories) == 0 && len(r.Transactions) == 0 && len(r.Years) == 0
}

// PlanCategoryDelete gathers what deleting a category drops: the category,
// categories of its series in reached projects, and their transactions.
func PlanCategoryDelete(s core.Store, categoryID string) Removal {
	r := newRemoval()
	target, ok := s.SubCategory(categoryID)
	if !ok {
		return r
	}
	r.Categories[target.ID] = true
	if origin, ok := s.Project(target.ProjectID); ok {
		reached := projectsInScope(s, newScope(origin))
		for _, c := range s.SubCategories {
			if c.Series() == target.Series() && reached[c.ProjectID] {
				r.Categories[c.ID] = true
			}
		}
	}
	collectTransactions(s, &r)
	return r
}

// PlanProjectDelete gathers a project, its categories and every transaction
// booked on them or on its free money.
func PlanProjectDelete(s core.Store, projectID string) Removal {
	r := newRemoval()
	if _, ok := s.Project(projectID); !ok {
		return r
	}
	r.Projects[projectID] = true
	collectCategories(s, &r)
	collectTransactions(s, &r)
	return r
}

// PlanYearDelete gathers a year's config, its month projects, their
// categories and their transactions.
func PlanYearDelete(s core.Store, year int) Removal {
	r := newRemoval()
	if _, ok := s.YearConfig(year); ok {
		r.Years[year] = true
	}
	for _, p := range s.Projects {
		if per, ok := p.Period(); ok && per.Year == year {
			r.Projects[p.ID] = true
		}
	}
	collectCategories(s, &r)
	collectTransactions(s, &r)
	return r
}

func collectCategories(s core.Store, r *Removal) {
	for _, c := range s.SubCategories {
		if r.Projects[c.ProjectID] {
			r.Categories[c.ID] = true
		}
	}
}

func collectTransactions(s core.Store, r *Removal) {
	for _, t := range s.Transactions {
		if t.Category.IsFreeMoney() {
			if r.Projects[t.Category.ProjectID()] {
				r.Transactions[t.ID] = true
			}
			continue
		}
		if r.Categories[t.Category.CategoryID()] {
			r.Transactions[t.ID] = true
		}
	}
}

// Apply builds the snapshot without the removed records.
func (r Removal) Apply(s core.Store) core.Store {
	if r.Empty() {
		return s
	}
	out := core.Store{
		Projects:       make([]core.Project, 0, len(s.Projects)),
		SubCategories:  make([]core.SubCategory, 0, len(s.SubCategories)),
		Transactions:   make([]core.Transaction, 0, len(s.Transactions)),
		PaymentMethods: s.Clone().PaymentMethods,
		YearConfigs:    make([]core.YearConfig, 0, len(s.YearConfigs)),
		ThemeID:        s.ThemeID,
	}
	for _, p := range s.Projects {
		if !r.Projects[p.ID] {
			out.Projects = append(out.Projects, p)
		}
	}
	for _, c := range s.SubCategories {
		if !r.Categories[c.ID] {
			out.SubCategories = append(out.SubCategories, c)
		}
	}
	for _, t := range s.Transactions {
		if !r.Transactions[t.ID] {
			out.Transactions = append(out.Transactions, t)
		}
	}
	for _, y := range s.YearConfigs {
		if !r.Years[y.Year] {
			out.YearConfigs = append(out.YearConfigs, y)
		}
	}
	return out
}

// DeleteCategory removes a category with its forward same-named siblings and
// every transaction booked on them.
func DeleteCategory(s core.Store, categoryID string) core.Store {
	return PlanCategoryDelete(s, categoryID).Apply(s)
}

// DeleteProject removes a project and everything beneath it.
func DeleteProject(s core.Store, projectID string) core.Store {
	return PlanProjectDelete(s, projectID).Apply(s)
}

// DeleteYear removes a year and everything beneath it. Guarding the current
// year is the caller's job.
func DeleteYear(s core.Store, year int) core.Store {
	return PlanYearDelete(s, year).Apply(s)
}
