package propagation

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

// PeriodDefaults seeds months created by year materialization.
type PeriodDefaults struct {
	TotalBudget decimal.Decimal
	Emoji       string
	CreatedAt   time.Time
}

// MissingPeriods lists the months of year that have no project yet.
func MissingPeriods(s core.Store, year int) []core.Period {
	var out []core.Period
	for _, p := range core.YearPeriods(year) {
		if _, ok := s.ProjectByPeriod(p); !ok {
			out = append(out, p)
		}
	}
	return out
}

// EnsureYearExists creates the missing months of year with default budgets
// and registers its YearConfig. Existing months are never touched.
func EnsureYearExists(s core.Store, year int, d PeriodDefaults) core.Store {
	missing := MissingPeriods(s, year)
	_, hasConfig := s.YearConfig(year)
	if len(missing) == 0 && hasConfig {
		return s
	}
	out := s.Clone()
	for _, p := range missing {
		out.Projects = append(out.Projects, core.Project{
			ID:          p.ID(),
			Year:        p.Year,
			Month:       p.Month,
			Emoji:       d.Emoji,
			TotalBudget: d.TotalBudget,
			CreatedAt:   d.CreatedAt,
		})
	}
	if !hasConfig {
		out.YearConfigs = append(out.YearConfigs, core.YearConfig{Year: year})
	}
	return out
}

// LatestYear is the newest year known to the store, or 0 when there is none.
func LatestYear(s core.Store) int {
	latest := 0
	for _, y := range s.YearConfigs {
		latest = max(latest, y.Year)
	}
	for _, p := range s.Projects {
		if per, ok := p.Period(); ok {
			latest = max(latest, per.Year)
		}
	}
	return latest
}

// EndCurrentYear collapses every year section, registering years that only
// had months, and materializes the year after the latest one. An empty store rolls over from d.CreatedAt's year.
func EndCurrentYear(s core.Store, d PeriodDefaults) core.Store {
	latest := LatestYear(s)
	if latest == 0 {
		latest = d.CreatedAt.Year()
	}
	out := s.Clone()
	for i := range out.YearConfigs {
		out.YearConfigs[i].IsCollapsed = true
	}
	for _, y := range s.Years() {
		if _, ok := out.YearConfig(y); !ok {
			out.YearConfigs = append(out.YearConfigs, core.YearConfig{Year: y, IsCollapsed: true})
		}
	}
	return EnsureYearExists(out, latest+1, d)
}

// SetYearCollapsed flips the fold state of a year, registering it if needed.
func SetYearCollapsed(s core.Store, year int, collapsed bool) core.Store {
	out := s.Clone()
	for i, y := range out.YearConfigs {
		if y.Year == year {
			out.YearConfigs[i].IsCollapsed = collapsed
			return out
		}
	}
	out.YearConfigs = append(out.YearConfigs, core.YearConfig{Year: year, IsCollapsed: collapsed})
	return out
}
