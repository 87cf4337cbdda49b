// Package billing attributes transactions to the billing month of the payment
// method they were paid with.
package billing

import (
	"time"

	"budgetpro/internal/core"
)

// candidateSpan bounds how far a billing month may sit from the calendar month.
const candidateSpan = 2

// ResolvePeriod returns the billing month a transaction dated date falls into
// for method. A cycle config wins over a statement day; with neither, the
// calendar month is used.
func ResolvePeriod(date time.Time, method core.PaymentMethod) core.Period {
	cal := core.PeriodOf(date)
	if method.CycleConfig != nil {
		if p, ok := resolveCycle(date, *method.CycleConfig); ok {
			return p
		}
		return cal
	}
	if method.StatementDay > 0 && date.Day() > method.StatementDay {
		return cal.Next()
	}
	return cal
}

// ResolveFor looks up the method by id. Unknown or empty ids yield ok=false.
func ResolveFor(date time.Time, methodID string, s core.Store) (core.Period, bool) {
	if methodID == "" {
		return core.Period{}, false
	}
	m, ok := s.PaymentMethod(methodID)
	if !ok {
		return core.Period{}, false
	}
	return ResolvePeriod(date, m), true
}

// Window is the inclusive day range attributed to a billing month.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// CycleWindow computes the window of billing month m under cfg. Days are
// clamped to the length of the month they land in.
func CycleWindow(m core.Period, cfg core.PaymentCycleConfig) (Window, error) {
	start, err := boundDay(m, cfg.From)
	if err != nil {
		return Window{}, err
	}
	end, err := boundDay(m, cfg.To)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

func resolveCycle(date time.Time, cfg core.PaymentCycleConfig) (core.Period, bool) {
	day := dayOf(date)
	cal := core.PeriodOf(date)
	for off := -candidateSpan; off <= candidateSpan; off++ {
		m := cal.AddMonths(off)
		w, err := CycleWindow(m, cfg)
		if err != nil {
			return core.Period{}, false
		}
		if w.Contains(day) {
			return m, true
		}
	}
	return core.Period{}, false
}

func boundDay(m core.Period, b core.CycleBound) (time.Time, error) {
	off, err := b.Anchor.Offset()
	if err != nil {
		return time.Time{}, err
	}
	p := m.AddMonths(off)
	d := b.Day
	if n := p.DaysIn(); d > n {
		d = n
	}
	if d < 1 {
		d = 1
	}
	return time.Date(p.Year, time.Month(p.Month), d, 0, 0, 0, 0, time.UTC), nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
