package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AnchorPrev    CycleAnchor = "PREV"
	AnchorCurrent CycleAnchor = "CURRENT"
	AnchorNext    CycleAnchor = "NEXT"
)

const (
	// CashMethodID identifies the payment method that always exists.
	CashMethodID = "cash"

	// FreeMoneyName is the display name of the unallocated bucket.
	FreeMoneyName  = "閒錢"
	FreeMoneyEmoji = "✨"
)

type (
	CycleAnchor string

	// Project is a budget container. Month-based projects carry Year and Month
	// and use the YYYY-MM period id; freeform projects leave both at zero.
	Project struct {
		ID          string          `json:"id"`
		Name        string          `json:"name,omitempty"`
		Year        int             `json:"year,omitempty"`
		Month       int             `json:"month,omitempty"`
		Emoji       string          `json:"emoji"`
		TotalBudget decimal.Decimal `json:"totalBudget"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// SubCategory.SeriesID links the copies of a recurring category across
	// months. It is empty until the series is first edited.
	SubCategory struct {
		ID        string          `json:"id"`
		ProjectID string          `json:"projectId"`
		Name      string          `json:"name"`
		Emoji     string          `json:"emoji"`
		Budget    decimal.Decimal `json:"budget"`
		SeriesID  string          `json:"seriesId,omitempty"`
	}

	// Transaction amounts are signed: positive is an expense, negative is
	// income or a refund.
	Transaction struct {
		ID              string          `json:"id"`
		Category        CategoryRef     `json:"subCategoryId"`
		PaymentMethodID string          `json:"paymentMethodId,omitempty"`
		Name            string          `json:"name"`
		Amount          decimal.Decimal `json:"amount"`
		Date            time.Time       `json:"date"`
	}

	// CycleBound is one end of a billing window, relative to the billing month.
	CycleBound struct {
		Anchor CycleAnchor `json:"type"`
		Day    int         `json:"day"`
	}

	PaymentCycleConfig struct {
		From CycleBound `json:"from"`
		To   CycleBound `json:"to"`
	}

	PaymentMethod struct {
		ID           string              `json:"id"`
		Name         string              `json:"name"`
		Emoji        string              `json:"emoji"`
		StatementDay int                 `json:"statementDay,omitempty"`
		CycleConfig  *PaymentCycleConfig `json:"cycleConfig,omitempty"`
	}

	YearConfig struct {
		Year        int  `json:"year"`
		IsCollapsed bool `json:"isCollapsed"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNegativeBudget      = errors.New("budget cannot be negative")
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidStatementDay = errors.New("statement day must be between 1 and 31")
	ErrInvalidCycleDay     = errors.New("cycle day must be between 1 and 31")
	ErrUnknownAnchor       = errors.New("unknown cycle anchor")
	ErrEmptyCategory       = errors.New("transaction has no category")
)

// Period returns the calendar month of a month-based project.
func (p Project) Period() (Period, bool) {
	if p.Year == 0 || p.Month == 0 {
		return Period{}, false
	}
	return Period{Year: p.Year, Month: p.Month}, true
}

// DisplayName is the freeform name, or the period id for month-based projects.
func (p Project) DisplayName() string {
	if per, ok := p.Period(); ok && strings.TrimSpace(p.Name) == "" {
		return per.ID()
	}
	return p.Name
}

func (p Project) Validate() error {
	if per, ok := p.Period(); ok {
		if err := per.Validate(); err != nil {
			return err
		}
	} else if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Series is the recurring lineage of the category. Categories with no
// SeriesID belong to the series of their current name.
func (s SubCategory) Series() string {
	if s.SeriesID != "" {
		return s.SeriesID
	}
	return NameSeries(s.Name)
}

// NameSeries is the implicit series shared by categories called name.
func NameSeries(name string) string {
	return "name:" + name
}

func (s SubCategory) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Budget.IsNegative() {
		return ErrNegativeBudget
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Category.IsZero() {
		return ErrEmptyCategory
	}
	if len(t.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return nil
}

// Offset is the month offset of an anchor relative to the billing month.
func (a CycleAnchor) Offset() (int, error) {
	switch a {
	case AnchorPrev:
		return -1, nil
	case AnchorCurrent:
		return 0, nil
	case AnchorNext:
		return 1, nil
	default:
		return 0, ErrUnknownAnchor
	}
}

func (b CycleBound) Validate() error {
	if _, err := b.Anchor.Offset(); err != nil {
		return err
	}
	if b.Day < 1 || b.Day > 31 {
		return ErrInvalidCycleDay
	}
	return nil
}

func (c PaymentCycleConfig) Validate() error {
	if err := c.From.Validate(); err != nil {
		return errors.New("invalid cycle start: " + err.Error())
	}
	if err := c.To.Validate(); err != nil {
		return errors.New("invalid cycle end: " + err.Error())
	}
	return nil
}

func (m PaymentMethod) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if m.StatementDay < 0 || m.StatementDay > 31 {
		return ErrInvalidStatementDay
	}
	if m.CycleConfig != nil {
		return m.CycleConfig.Validate()
	}
	return nil
}

// CashMethod is the default payment method present in every store.
func CashMethod() PaymentMethod {
	return PaymentMethod{ID: CashMethodID, Name: "現金", Emoji: "💵"}
}
