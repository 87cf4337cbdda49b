package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
	"budgetpro/internal/stats"
)

func TestRows(t *testing.T) {
	s := core.Store{
		Projects:      []core.Project{{ID: "2026-01", Year: 2026, Month: 1, TotalBudget: decimal.NewFromInt(30000)}},
		SubCategories: []core.SubCategory{{ID: "food", ProjectID: "2026-01", Name: "food", Emoji: "🍜", Budget: decimal.NewFromInt(10000)}},
		Transactions: []core.Transaction{
			{ID: "t", Category: core.RealCategory("food"), PaymentMethodID: "cash", Amount: decimal.NewFromInt(1500),
				Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
		PaymentMethods: []core.PaymentMethod{core.CashMethod()},
	}
	r := ProjectReport{
		Revision:   4,
		Project:    s.Projects[0],
		Stats:      stats.ComputeProjectStats(s, "2026-01"),
		Cycles:     stats.ComputePaymentCycleStats(s, "2026-01"),
		ExportedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	rows := Rows(r)
	if len(rows) != 4 {
		t.Fatalf("expected free money, food, cash and total rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(Header) {
			t.Fatalf("row %d has %d columns, want %d", i, len(row), len(Header))
		}
	}
	if rows[0][4] != KindFreeMoney || rows[1][4] != KindCategory || rows[2][4] != KindPaymentCycle || rows[3][4] != KindTotal {
		t.Fatalf("unexpected kinds: %v %v %v %v", rows[0][4], rows[1][4], rows[2][4], rows[3][4])
	}
	if rows[1][9] != "$8,500" {
		t.Fatalf("food display = %v", rows[1][9])
	}
	if rows[3][3] != "2026-01" || rows[3][8] != "28500" {
		t.Fatalf("total row = %v", rows[3])
	}
}
