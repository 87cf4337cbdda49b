package propagation

import (
	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

// PropagateProjectBudget sets the total budget of the project and of every
// later month. A freeform project only changes itself.
func PropagateProjectBudget(s core.Store, projectID string, budget decimal.Decimal) core.Store {
	origin, ok := s.Project(projectID)
	if !ok {
		return s
	}
	sc := newScope(origin)
	out := s.Clone()
	for i, p := range out.Projects {
		if sc.reaches(p) {
			out.Projects[i].TotalBudget = budget
		}
	}
	return out
}
