package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar month. The zero value is not a valid period.
type Period struct {
	Year  int
	Month int // 1-12
}

// PeriodOf returns the calendar month of t in t's location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ParsePeriod parses a YYYY-MM period id.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	y, m, ok := strings.Cut(s, "-")
	if !ok {
		return Period{}, fmt.Errorf("parse period %q: missing separator", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidYear)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidMonth)
	}
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, err)
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Year < 1 || p.Year > 9999 {
		return ErrInvalidYear
	}
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// ID is the zero-padded YYYY-MM form used as the project id.
func (p Period) ID() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) String() string { return p.ID() }

// Compare orders periods chronologically: -1 if p is before q, 0 if equal, 1 after.
func (p Period) Compare(q Period) int {
	switch {
	case p.Year < q.Year:
		return -1
	case p.Year > q.Year:
		return 1
	case p.Month < q.Month:
		return -1
	case p.Month > q.Month:
		return 1
	}
	return 0
}

func (p Period) Before(q Period) bool { return p.Compare(q) < 0 }

// AddMonths shifts the period by n months, rolling the year as needed.
func (p Period) AddMonths(n int) Period {
	idx := p.Year*12 + (p.Month - 1) + n
	return Period{Year: idx / 12, Month: idx%12 + 1}
}

func (p Period) Next() Period { return p.AddMonths(1) }

// DaysIn returns the number of days in the month.
func (p Period) DaysIn() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// YearPeriods returns the twelve periods of a year in order.
func YearPeriods(year int) []Period {
	out := make([]Period, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, Period{Year: year, Month: m})
	}
	return out
}
