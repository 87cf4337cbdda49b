package propagation

import (
	"budgetpro/internal/core"
)

// PropagateCategoryEdit applies e from its project forward. Editing matches
// the category itself plus every category of the same series in a project
// reached from the edited one, and pins them to that series so a rename
// onto an existing name cannot pull in unrelated categories later. Adding
// creates the category in every reached project that lacks that name. Both
// forms are idempotent. Unknown projects or categories leave the store
// unchanged.
func PropagateCategoryEdit(s core.Store, ids core.IDGenerator, e CategoryEdit) core.Store {
	origin, ok := s.Project(e.ProjectID)
	if !ok {
		return s
	}
	sc := newScope(origin)
	if e.CategoryID == "" {
		return addRecurring(s, ids, sc, e)
	}
	return editExisting(s, sc, e)
}

func editExisting(s core.Store, sc scope, e CategoryEdit) core.Store {
	edited, ok := s.SubCategory(e.CategoryID)
	if !ok {
		return s
	}
	series := edited.Series()
	reached := projectsInScope(s, sc)

	out := s.Clone()
	for i, c := range out.SubCategories {
		if c.ID != edited.ID && !(reached[c.ProjectID] && c.Series() == series) {
			continue
		}
		c.SeriesID = series
		c.Name = e.Name
		c.Emoji = e.Emoji
		c.Budget = e.Budget
		out.SubCategories[i] = c
	}
	return out
}

func addRecurring(s core.Store, ids core.IDGenerator, sc scope, e CategoryEdit) core.Store {
	has := make(map[string]bool)
	series := core.NameSeries(e.Name)
	claimed := false
	for _, c := range s.SubCategories {
		if c.Name == e.Name {
			has[c.ProjectID] = true
		}
		// A renamed series still carries its old name key.
		if c.SeriesID == series && c.Name != e.Name {
			claimed = true
		}
	}

	out := s.Clone()
	for _, p := range s.Projects {
		if !sc.reaches(p) || has[p.ID] {
			continue
		}
		if claimed {
			series, claimed = ids.NewID(), false
		}
		out.SubCategories = append(out.SubCategories, core.SubCategory{
			ID:        ids.NewID(),
			ProjectID: p.ID,
			Name:      e.Name,
			Emoji:     e.Emoji,
			Budget:    e.Budget,
			SeriesID:  series,
		})
		has[p.ID] = true
	}
	return out
}
