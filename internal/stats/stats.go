// Package stats derives balances from a store snapshot. Everything here is
// recomputed on demand from raw transactions; nothing is cached.
package stats

import (
	"github.com/shopspring/decimal"

	"budgetpro/internal/billing"
	"budgetpro/internal/core"
)

type (
	// SubCategoryStat is a spending bucket with its running balance. The
	// free-money bucket has no stored category behind it.
	SubCategoryStat struct {
		Ref         core.CategoryRef `json:"id"`
		ProjectID   string           `json:"projectId"`
		Name        string           `json:"name"`
		Emoji       string           `json:"emoji"`
		Budget      decimal.Decimal  `json:"budget"`
		Spent       decimal.Decimal  `json:"spent"`
		Remaining   decimal.Decimal  `json:"remaining"`
		IsFreeMoney bool             `json:"isFreeMoney"`
	}

	ProjectStats struct {
		TotalBudget    decimal.Decimal   `json:"totalBudget"`
		TotalSpent     decimal.Decimal   `json:"totalSpent"`
		TotalRemaining decimal.Decimal   `json:"totalRemaining"`
		SubStats       []SubCategoryStat `json:"subStats"`
	}

	PaymentCycleStat struct {
		MethodID string          `json:"methodId"`
		Name     string          `json:"name"`
		Emoji    string          `json:"emoji"`
		Total    decimal.Decimal `json:"total"`
	}
)

// ComputeProjectStats returns the balances of a project: the free-money
// bucket first, then its categories in store order. An unknown project
// yields zero totals and no buckets.
func ComputeProjectStats(s core.Store, projectID string) ProjectStats {
	project, ok := s.Project(projectID)
	if !ok {
		return ProjectStats{SubStats: []SubCategoryStat{}}
	}

	cats := s.CategoriesOf(projectID)
	spent := spentByRef(s.Transactions)

	allocated := decimal.Zero
	regular := make([]SubCategoryStat, 0, len(cats))
	for _, c := range cats {
		allocated = allocated.Add(c.Budget)
		ref := core.RealCategory(c.ID)
		sp := spent[ref]
		regular = append(regular, SubCategoryStat{
			Ref:       ref,
			ProjectID: projectID,
			Name:      c.Name,
			Emoji:     c.Emoji,
			Budget:    c.Budget,
			Spent:     sp,
			Remaining: c.Budget.Sub(sp),
		})
	}

	freeRef := core.FreeMoney(projectID)
	freeBudget := project.TotalBudget.Sub(allocated)
	freeSpent := spent[freeRef]
	free := SubCategoryStat{
		Ref:         freeRef,
		ProjectID:   projectID,
		Name:        core.FreeMoneyName,
		Emoji:       core.FreeMoneyEmoji,
		Budget:      freeBudget,
		Spent:       freeSpent,
		Remaining:   freeBudget.Sub(freeSpent),
		IsFreeMoney: true,
	}

	subStats := append([]SubCategoryStat{free}, regular...)

	// Summed over the transactions themselves so that a category id listed
	// twice can never count its spending twice.
	members := make(map[core.CategoryRef]struct{}, len(subStats))
	for _, st := range subStats {
		members[st.Ref] = struct{}{}
	}
	total := decimal.Zero
	for _, t := range s.Transactions {
		if _, ok := members[t.Category]; ok {
			total = total.Add(t.Amount)
		}
	}

	return ProjectStats{
		TotalBudget:    project.TotalBudget,
		TotalSpent:     total,
		TotalRemaining: project.TotalBudget.Sub(total),
		SubStats:       subStats,
	}
}

// Stat finds a bucket by ref.
func (ps ProjectStats) Stat(ref core.CategoryRef) (SubCategoryStat, bool) {
	for _, st := range ps.SubStats {
		if st.Ref == ref {
			return st, true
		}
	}
	return SubCategoryStat{}, false
}

// ComputePaymentCycleStats totals, per payment method, the transactions whose
// billing month is the project's month. Freeform and unknown projects have
// no billing month and yield nil.
func ComputePaymentCycleStats(s core.Store, projectID string) []PaymentCycleStat {
	project, ok := s.Project(projectID)
	if !ok {
		return nil
	}
	period, ok := project.Period()
	if !ok {
		return nil
	}

	totals := make(map[string]decimal.Decimal, len(s.PaymentMethods))
	for _, t := range s.Transactions {
		p, ok := billing.ResolveFor(t.Date, t.PaymentMethodID, s)
		if !ok || p != period {
			continue
		}
		totals[t.PaymentMethodID] = totals[t.PaymentMethodID].Add(t.Amount)
	}

	out := make([]PaymentCycleStat, 0, len(s.PaymentMethods))
	for _, m := range s.PaymentMethods {
		out = append(out, PaymentCycleStat{
			MethodID: m.ID,
			Name:     m.Name,
			Emoji:    m.Emoji,
			Total:    totals[m.ID],
		})
	}
	return out
}

func spentByRef(txs []core.Transaction) map[core.CategoryRef]decimal.Decimal {
	out := make(map[core.CategoryRef]decimal.Decimal)
	for _, t := range txs {
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}
