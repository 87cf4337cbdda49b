package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
	"budgetpro/internal/propagation"
)

type CategoryInput struct {
	ProjectID string
	Name      string
	Emoji     string
	Budget    decimal.Decimal
}

func (in CategoryInput) validate() error {
	c := core.SubCategory{Name: strings.TrimSpace(in.Name), Budget: in.Budget}
	if err := c.Validate(); err != nil {
		return invalid(err)
	}
	return nil
}

// AddCategory creates a recurring category in the project and, for months,
// in every later month that lacks one with the same name.
func (s *BudgetService) AddCategory(ctx context.Context, in CategoryInput) (core.Store, error) {
	if err := in.validate(); err != nil {
		return core.Store{}, err
	}
	return s.commit(ctx, "add_category", func(st core.Store) (core.Store, error) {
		if _, ok := st.Project(in.ProjectID); !ok {
			return st, notFound("project", in.ProjectID)
		}
		return propagation.PropagateCategoryEdit(st, s.ids, propagation.CategoryEdit{
			ProjectID: in.ProjectID,
			Name:      strings.TrimSpace(in.Name),
			Emoji:     in.Emoji,
			Budget:    in.Budget,
		}), nil
	})
}

// UpdateCategory edits a category and its same-named successors.
func (s *BudgetService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (core.SubCategory, error) {
	if err := in.validate(); err != nil {
		return core.SubCategory{}, err
	}
	st, err := s.commit(ctx, "update_category", func(st core.Store) (core.Store, error) {
		c, ok := st.SubCategory(id)
		if !ok {
			return st, notFound("category", id)
		}
		return propagation.PropagateCategoryEdit(st, s.ids, propagation.CategoryEdit{
			ProjectID:  c.ProjectID,
			CategoryID: id,
			Name:       strings.TrimSpace(in.Name),
			Emoji:      in.Emoji,
			Budget:     in.Budget,
		}), nil
	})
	if err != nil {
		return core.SubCategory{}, err
	}
	c, _ := st.SubCategory(id)
	return c, nil
}

// PlanDeleteCategory reports what deleting a category would remove without
// changing anything.
func (s *BudgetService) PlanDeleteCategory(id string) (propagation.Removal, error) {
	st := s.Snapshot()
	if _, ok := st.SubCategory(id); !ok {
		return propagation.Removal{}, notFound("category", id)
	}
	return propagation.PlanCategoryDelete(st, id), nil
}

// DeleteCategory removes a category, its same-named successors and all of
// their transactions.
func (s *BudgetService) DeleteCategory(ctx context.Context, id string) (propagation.Removal, error) {
	var plan propagation.Removal
	_, err := s.commit(ctx, "delete_category", func(st core.Store) (core.Store, error) {
		if _, ok := st.SubCategory(id); !ok {
			return st, notFound("category", id)
		}
		plan = propagation.PlanCategoryDelete(st, id)
		return plan.Apply(st), nil
	})
	return plan, err
}
