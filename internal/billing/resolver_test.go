package billing

import (
	"testing"
	"time"

	"budgetpro/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 9, 30, 0, 0, time.UTC)
}

func TestResolvePeriodStatementDay(t *testing.T) {
	card := core.PaymentMethod{ID: "card", Name: "card", StatementDay: 15}
	cases := []struct {
		date time.Time
		want core.Period
	}{
		{day(2026, 3, 15), core.Period{Year: 2026, Month: 3}},
		{day(2026, 3, 16), core.Period{Year: 2026, Month: 4}},
		{day(2026, 3, 1), core.Period{Year: 2026, Month: 3}},
		{day(2026, 12, 20), core.Period{Year: 2027, Month: 1}},
		{day(2026, 12, 15), core.Period{Year: 2026, Month: 12}},
	}
	for _, tc := range cases {
		if got := ResolvePeriod(tc.date, card); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestResolvePeriodNoCutoff(t *testing.T) {
	cash := core.CashMethod()
	if got := ResolvePeriod(day(2026, 12, 31), cash); got != (core.Period{Year: 2026, Month: 12}) {
		t.Fatalf("got %s", got)
	}
}

func TestCycleConfigMatchesStatementDay(t *testing.T) {
	simple := core.PaymentMethod{StatementDay: 15}
	cycled := core.PaymentMethod{CycleConfig: ptr(statementWindow(15))}
	start := day(2025, 11, 1)
	for i := 0; i < 120; i++ {
		d := start.AddDate(0, 0, i)
		a, b := ResolvePeriod(d, simple), ResolvePeriod(d, cycled)
		if a != b {
			t.Fatalf("%s: statement=%s cycle=%s", d.Format("2006-01-02"), a, b)
		}
	}
}

func TestResolvePeriodCycleConfig(t *testing.T) {
	// Window for month M runs from the 5th of M to the 4th of M+1.
	m := core.PaymentMethod{CycleConfig: &core.PaymentCycleConfig{
		From: core.CycleBound{Anchor: core.AnchorCurrent, Day: 5},
		To:   core.CycleBound{Anchor: core.AnchorNext, Day: 4},
	}}
	cases := []struct {
		date time.Time
		want core.Period
	}{
		{day(2026, 3, 5), core.Period{Year: 2026, Month: 3}},
		{day(2026, 3, 4), core.Period{Year: 2026, Month: 2}},
		{day(2026, 1, 2), core.Period{Year: 2025, Month: 12}},
		{day(2026, 4, 4), core.Period{Year: 2026, Month: 3}},
	}
	for _, tc := range cases {
		if got := ResolvePeriod(tc.date, m); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestResolvePeriodCycleClampsShortMonths(t *testing.T) {
	// Calendar-month window with the end day clamped in February.
	m := core.PaymentMethod{CycleConfig: &core.PaymentCycleConfig{
		From: core.CycleBound{Anchor: core.AnchorCurrent, Day: 1},
		To:   core.CycleBound{Anchor: core.AnchorCurrent, Day: 31},
	}}
	if got := ResolvePeriod(day(2026, 2, 28), m); got != (core.Period{Year: 2026, Month: 2}) {
		t.Fatalf("got %s", got)
	}
	if got := ResolvePeriod(day(2026, 3, 1), m); got != (core.Period{Year: 2026, Month: 3}) {
		t.Fatalf("got %s", got)
	}
}

func TestResolvePeriodCycleGapFallsBackToCalendar(t *testing.T) {
	// Windows cover only the 1st-10th; later days belong to no cycle.
	m := core.PaymentMethod{CycleConfig: &core.PaymentCycleConfig{
		From: core.CycleBound{Anchor: core.AnchorCurrent, Day: 1},
		To:   core.CycleBound{Anchor: core.AnchorCurrent, Day: 10},
	}}
	if got := ResolvePeriod(day(2026, 6, 20), m); got != (core.Period{Year: 2026, Month: 6}) {
		t.Fatalf("got %s", got)
	}
}

func TestResolveFor(t *testing.T) {
	s := core.Store{PaymentMethods: []core.PaymentMethod{{ID: "card", Name: "card", StatementDay: 10}}}
	if p, ok := ResolveFor(day(2026, 1, 11), "card", s); !ok || p != (core.Period{Year: 2026, Month: 2}) {
		t.Fatalf("got %s, %v", p, ok)
	}
	if _, ok := ResolveFor(day(2026, 1, 11), "", s); ok {
		t.Fatalf("empty method resolved")
	}
	if _, ok := ResolveFor(day(2026, 1, 11), "gone", s); ok {
		t.Fatalf("unknown method resolved")
	}
}

func ptr[T any](v T) *T { return &v }

// statementWindow is the cycle config a statement day behaves like.
func statementWindow(statementDay int) core.PaymentCycleConfig {
	return core.PaymentCycleConfig{
		From: core.CycleBound{Anchor: core.AnchorPrev, Day: statementDay + 1},
		To:   core.CycleBound{Anchor: core.AnchorCurrent, Day: statementDay},
	}
}
