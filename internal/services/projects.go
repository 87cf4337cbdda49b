package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
	"budgetpro/internal/propagation"
)

type ProjectInput struct {
	Name        string
	Emoji       string
	TotalBudget decimal.Decimal
}

// CreateProject adds a freeform project.
func (s *BudgetService) CreateProject(ctx context.Context, in ProjectInput) (core.Project, error) {
	if in.TotalBudget.IsNegative() {
		return core.Project{}, invalid(core.ErrNegativeBudget)
	}
	p := core.Project{
		ID:          s.ids.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Emoji:       in.Emoji,
		TotalBudget: in.TotalBudget,
		CreatedAt:   s.now(),
	}
	if err := p.Validate(); err != nil {
		return core.Project{}, invalid(err)
	}
	_, err := s.commit(ctx, "create_project", func(st core.Store) (core.Store, error) {
		out := st.Clone()
		out.Projects = append(out.Projects, p)
		return out, nil
	})
	if err != nil {
		return core.Project{}, err
	}
	return p, nil
}

// UpdateProject edits a project. The total budget of a month carries forward
// to every later month; name changes only apply to freeform projects.
func (s *BudgetService) UpdateProject(ctx context.Context, id string, in ProjectInput) (core.Project, error) {
	if in.TotalBudget.IsNegative() {
		return core.Project{}, invalid(core.ErrNegativeBudget)
	}
	st, err := s.commit(ctx, "update_project", func(st core.Store) (core.Store, error) {
		p, ok := st.Project(id)
		if !ok {
			return st, notFound("project", id)
		}
		if _, monthly := p.Period(); !monthly {
			if strings.TrimSpace(in.Name) == "" {
				return st, invalid(core.ErrEmptyName)
			}
		}
		// PropagateProjectBudget returns a fresh clone for known projects.
		out := propagation.PropagateProjectBudget(st, id, in.TotalBudget)
		for i := range out.Projects {
			if out.Projects[i].ID != id {
				continue
			}
			if _, monthly := out.Projects[i].Period(); !monthly {
				out.Projects[i].Name = strings.TrimSpace(in.Name)
			}
			if in.Emoji != "" {
				out.Projects[i].Emoji = in.Emoji
			}
		}
		return out, nil
	})
	if err != nil {
		return core.Project{}, err
	}
	p, _ := st.Project(id)
	return p, nil
}

// DeleteProject removes a project with its categories and transactions.
func (s *BudgetService) DeleteProject(ctx context.Context, id string) (propagation.Removal, error) {
	var plan propagation.Removal
	_, err := s.commit(ctx, "delete_project", func(st core.Store) (core.Store, error) {
		if _, ok := st.Project(id); !ok {
			return st, notFound("project", id)
		}
		plan = propagation.PlanProjectDelete(st, id)
		return plan.Apply(st), nil
	})
	return plan, err
}

// PlanDeleteProject reports what deleting a project would remove.
func (s *BudgetService) PlanDeleteProject(id string) (propagation.Removal, error) {
	st := s.Snapshot()
	if _, ok := st.Project(id); !ok {
		return propagation.Removal{}, notFound("project", id)
	}
	return propagation.PlanProjectDelete(st, id), nil
}
