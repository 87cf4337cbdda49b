package stats

import (
	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

// ChartBar is one bucket of the budget-vs-spent chart. Heights are
// percentages of the tallest value on the chart.
type ChartBar struct {
	Ref          core.CategoryRef `json:"id"`
	Name         string           `json:"name"`
	Emoji        string           `json:"emoji"`
	Budget       decimal.Decimal  `json:"budget"`
	Spent        decimal.Decimal  `json:"spent"`
	BudgetHeight float64          `json:"budgetHeight"`
	SpentHeight  float64          `json:"spentHeight"`
	OverBudget   bool             `json:"overBudget"`
}

var hundred = decimal.NewFromInt(100)

// ChartBars scales every bucket against max(1, largest budget, largest spent).
// Negative values draw as empty bars.
func ChartBars(ps ProjectStats) []ChartBar {
	scale := decimal.NewFromInt(1)
	for _, st := range ps.SubStats {
		scale = decimal.Max(scale, st.Budget, st.Spent)
	}

	bars := make([]ChartBar, 0, len(ps.SubStats))
	for _, st := range ps.SubStats {
		bars = append(bars, ChartBar{
			Ref:          st.Ref,
			Name:         st.Name,
			Emoji:        st.Emoji,
			Budget:       st.Budget,
			Spent:        st.Spent,
			BudgetHeight: height(st.Budget, scale),
			SpentHeight:  height(st.Spent, scale),
			OverBudget:   st.Spent.GreaterThan(st.Budget),
		})
	}
	return bars
}

func height(v, scale decimal.Decimal) float64 {
	if !v.IsPositive() {
		return 0
	}
	return v.Mul(hundred).Div(scale).Round(2).InexactFloat64()
}
