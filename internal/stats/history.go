package stats

import (
	"slices"

	"budgetpro/internal/core"
)

// TransactionsFor lists the transactions booked against ref, newest first.
func TransactionsFor(s core.Store, ref core.CategoryRef) []core.Transaction {
	var out []core.Transaction
	for _, t := range s.Transactions {
		if t.Category == ref {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out
}

// ProjectTransactions lists every transaction of a project, free money
// included, newest first.
func ProjectTransactions(s core.Store, projectID string) []core.Transaction {
	refs := map[core.CategoryRef]struct{}{core.FreeMoney(projectID): {}}
	for _, c := range s.CategoriesOf(projectID) {
		refs[core.RealCategory(c.ID)] = struct{}{}
	}
	var out []core.Transaction
	for _, t := range s.Transactions {
		if _, ok := refs[t.Category]; ok {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(txs []core.Transaction) {
	slices.SortStableFunc(txs, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date)
	})
}
