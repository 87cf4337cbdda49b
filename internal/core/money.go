package core

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayLocale = language.MustParse("zh-TW")

// ParseAmount parses a signed amount as typed by the user. Grouping commas and
// a leading currency symbol are tolerated; anything else non-numeric is rejected.
//
//	ParseAmount("3000")    -> 3000
//	ParseAmount("-500")    -> -500
//	ParseAmount("$1,250.5") -> 1250.5
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.ContainsAny(s, "+-eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseBudget is ParseAmount restricted to non-negative values.
func ParseBudget(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeBudget
	}
	return d, nil
}

// FormatCurrency renders an amount the way every surface displays it:
// zh-TW digit grouping, a "$" symbol and no fraction digits.
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(0)
	if rounded.IsNegative() {
		return "-$" + groupDigits(rounded.Neg())
	}
	return "$" + groupDigits(rounded)
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// groupDigits formats a non-negative integral amount. Values past int64 are
// grouped by hand in threes, which is what the zh-TW printer does.
func groupDigits(d decimal.Decimal) string {
	if d.LessThanOrEqual(maxInt64) {
		return message.NewPrinter(displayLocale).Sprintf("%d", d.IntPart())
	}
	digits := d.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultTransactionName is the name given to a transaction entered without
// one: the zh-TW short date, e.g. 2026/10/17.
func DefaultTransactionName(t time.Time) string {
	return t.Format("2006/1/2")
}
