package services

import (
	"slices"

	"budgetpro/internal/billing"
	"budgetpro/internal/core"
)

// AffectedProjects lists, sorted, the ids of projects whose statistics may
// differ between prev and next. Projects that no longer exist are included so
// consumers can drop stale reports.
func AffectedProjects(prev, next core.Store) []string {
	set := map[string]bool{}

	projectDiff(prev, next, set)
	categoryDiff(prev, next, set)
	transactionDiff(prev, next, set)
	methodDiff(prev, next, set)

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func projectDiff(prev, next core.Store, set map[string]bool) {
	before := make(map[string]core.Project, len(prev.Projects))
	for _, p := range prev.Projects {
		before[p.ID] = p
	}
	for _, p := range next.Projects {
		old, ok := before[p.ID]
		if !ok || old.Name != p.Name || old.Emoji != p.Emoji || !old.TotalBudget.Equal(p.TotalBudget) {
			set[p.ID] = true
		}
		delete(before, p.ID)
	}
	for id := range before {
		set[id] = true
	}
}

func categoryDiff(prev, next core.Store, set map[string]bool) {
	before := make(map[string]core.SubCategory, len(prev.SubCategories))
	for _, c := range prev.SubCategories {
		before[c.ID] = c
	}
	for _, c := range next.SubCategories {
		old, ok := before[c.ID]
		if !ok || !sameCategory(old, c) {
			set[c.ProjectID] = true
		}
		delete(before, c.ID)
	}
	for _, c := range before {
		set[c.ProjectID] = true
	}
}

func sameCategory(a, b core.SubCategory) bool {
	return a.ProjectID == b.ProjectID && a.Name == b.Name && a.Emoji == b.Emoji && a.Budget.Equal(b.Budget)
}

func transactionDiff(prev, next core.Store, set map[string]bool) {
	before := make(map[string]core.Transaction, len(prev.Transactions))
	for _, t := range prev.Transactions {
		before[t.ID] = t
	}
	for _, t := range next.Transactions {
		old, ok := before[t.ID]
		delete(before, t.ID)
		if ok && sameTransaction(old, t) {
			continue
		}
		markTransaction(next, t, set)
		if ok {
			markTransaction(prev, old, set)
		}
	}
	for _, t := range before {
		markTransaction(prev, t, set)
	}
}

func sameTransaction(a, b core.Transaction) bool {
	return a.Category == b.Category &&
		a.PaymentMethodID == b.PaymentMethodID &&
		a.Name == b.Name &&
		a.Amount.Equal(b.Amount) &&
		a.Date.Equal(b.Date)
}

// markTransaction flags the project the transaction is booked on and the
// month its payment method bills it to.
func markTransaction(s core.Store, t core.Transaction, set map[string]bool) {
	if p, ok := s.ProjectOf(t.Category); ok {
		set[p.ID] = true
	} else if id := t.Category.ProjectID(); id != "" {
		set[id] = true
	}
	if t.PaymentMethodID == "" {
		return
	}
	if per, ok := billing.ResolveFor(t.Date, t.PaymentMethodID, s); ok {
		if p, ok := s.ProjectByPeriod(per); ok {
			set[p.ID] = true
		}
	}
}

// methodDiff flags every project holding a transaction paid with a method
// whose name or billing rules changed.
func methodDiff(prev, next core.Store, set map[string]bool) {
	changed := map[string]bool{}
	before := make(map[string]core.PaymentMethod, len(prev.PaymentMethods))
	for _, m := range prev.PaymentMethods {
		before[m.ID] = m
	}
	for _, m := range next.PaymentMethods {
		old, ok := before[m.ID]
		if !ok || !sameMethod(old, m) {
			changed[m.ID] = true
		}
		delete(before, m.ID)
	}
	for id := range before {
		changed[id] = true
	}
	if len(changed) == 0 {
		return
	}
	for _, t := range prev.Transactions {
		if changed[t.PaymentMethodID] {
			markTransaction(prev, t, set)
		}
	}
	for _, t := range next.Transactions {
		if changed[t.PaymentMethodID] {
			markTransaction(next, t, set)
		}
	}
}

func sameMethod(a, b core.PaymentMethod) bool {
	if a.Name != b.Name || a.Emoji != b.Emoji || a.StatementDay != b.StatementDay {
		return false
	}
	switch {
	case a.CycleConfig == nil && b.CycleConfig == nil:
		return true
	case a.CycleConfig == nil || b.CycleConfig == nil:
		return false
	}
	return *a.CycleConfig == *b.CycleConfig
}
