package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDefaultStore(t *testing.T) {
	s := DefaultStore(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	if len(s.PaymentMethods) != 1 || s.PaymentMethods[0].ID != CashMethodID {
		t.Fatalf("expected only cash, got %+v", s.PaymentMethods)
	}
	if len(s.YearConfigs) != 1 || s.YearConfigs[0].Year != 2026 {
		t.Fatalf("unexpected year configs %+v", s.YearConfigs)
	}
	if s.Projects == nil || s.Transactions == nil || s.SubCategories == nil {
		t.Fatalf("lists must be empty, not nil")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := Store{
		SubCategories: []SubCategory{{ID: "c", Name: "food", Budget: decimal.NewFromInt(1)}},
		PaymentMethods: []PaymentMethod{{ID: "card", Name: "card", CycleConfig: &PaymentCycleConfig{
			From: CycleBound{AnchorPrev, 16}, To: CycleBound{AnchorCurrent, 15},
		}}},
	}
	c := s.Clone()
	c.SubCategories[0].Name = "changed"
	c.PaymentMethods[0].CycleConfig.From.Day = 1
	if s.SubCategories[0].Name != "food" {
		t.Fatalf("clone shares category slice")
	}
	if s.PaymentMethods[0].CycleConfig.From.Day != 16 {
		t.Fatalf("clone shares cycle config")
	}
}

func TestNormalizeAddsCash(t *testing.T) {
	s := Store{PaymentMethods: []PaymentMethod{{ID: "card", Name: "card"}}}.Normalize()
	if s.PaymentMethods[0].ID != CashMethodID || len(s.PaymentMethods) != 2 {
		t.Fatalf("cash not prepended: %+v", s.PaymentMethods)
	}
	again := s.Normalize()
	if len(again.PaymentMethods) != 2 {
		t.Fatalf("normalize not idempotent")
	}
}

func TestProjectOf(t *testing.T) {
	s := Store{
		Projects:      []Project{{ID: "2026-01", Year: 2026, Month: 1}},
		SubCategories: []SubCategory{{ID: "food", ProjectID: "2026-01", Name: "food"}},
	}
	if p, ok := s.ProjectOf(RealCategory("food")); !ok || p.ID != "2026-01" {
		t.Fatalf("real ref: %v %v", p, ok)
	}
	if p, ok := s.ProjectOf(FreeMoney("2026-01")); !ok || p.ID != "2026-01" {
		t.Fatalf("free ref: %v %v", p, ok)
	}
	if _, ok := s.ProjectOf(RealCategory("missing")); ok {
		t.Fatalf("missing category resolved")
	}
}

func TestYearsNewestFirst(t *testing.T) {
	s := Store{
		YearConfigs: []YearConfig{{Year: 2025}, {Year: 2026}},
		Projects:    []Project{{ID: "2027-01", Year: 2027, Month: 1}, {ID: "x", Name: "free"}},
	}
	got := s.Years()
	want := []int{2027, 2026, 2025}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
