package services

import (
	"context"
	"fmt"

	"budgetpro/internal/core"
	"budgetpro/internal/propagation"
)

// EnsureYear materializes the missing months of year and returns how many
// were created. Nothing is committed when the year is already complete.
func (s *BudgetService) EnsureYear(ctx context.Context, year int) (int, error) {
	if err := (core.Period{Year: year, Month: 1}).Validate(); err != nil {
		return 0, invalid(err)
	}
	created := 0
	_, err := s.commit(ctx, "ensure_year", func(st core.Store) (core.Store, error) {
		created = len(propagation.MissingPeriods(st, year))
		out := propagation.EnsureYearExists(st, year, s.periodDefaults())
		if created == 0 && len(out.YearConfigs) == len(st.YearConfigs) {
			return st, errUnchanged
		}
		return out, nil
	})
	return created, err
}

// PlanDeleteYear reports what deleting a year would remove.
func (s *BudgetService) PlanDeleteYear(year int) (propagation.Removal, error) {
	if year == s.now().Year() {
		return propagation.Removal{}, ErrCurrentYear
	}
	return propagation.PlanYearDelete(s.Snapshot(), year), nil
}

// DeleteYear removes every month of year with their categories and
// transactions. The current calendar year is protected.
func (s *BudgetService) DeleteYear(ctx context.Context, year int) (propagation.Removal, error) {
	if year == s.now().Year() {
		return propagation.Removal{}, ErrCurrentYear
	}
	var plan propagation.Removal
	_, err := s.commit(ctx, "delete_year", func(st core.Store) (core.Store, error) {
		plan = propagation.PlanYearDelete(st, year)
		if plan.Empty() {
			return st, notFound("year", fmt.Sprint(year))
		}
		return plan.Apply(st), nil
	})
	return plan, err
}

// EndCurrentYear folds every year and opens the one after the latest.
func (s *BudgetService) EndCurrentYear(ctx context.Context) (int, error) {
	var opened int
	_, err := s.commit(ctx, "end_current_year", func(st core.Store) (core.Store, error) {
		out := propagation.EndCurrentYear(st, s.periodDefaults())
		opened = propagation.LatestYear(out)
		return out, nil
	})
	return opened, err
}

func (s *BudgetService) SetYearCollapsed(ctx context.Context, year int, collapsed bool) error {
	_, err := s.commit(ctx, "set_year_collapsed", func(st core.Store) (core.Store, error) {
		if y, ok := st.YearConfig(year); ok && y.IsCollapsed == collapsed {
			return st, errUnchanged
		}
		return propagation.SetYearCollapsed(st, year, collapsed), nil
	})
	return err
}

func (s *BudgetService) SetTheme(ctx context.Context, themeID string) error {
	_, err := s.commit(ctx, "set_theme", func(st core.Store) (core.Store, error) {
		if st.ThemeID == themeID {
			return st, errUnchanged
		}
		out := st.Clone()
		out.ThemeID = themeID
		return out, nil
	})
	return err
}
