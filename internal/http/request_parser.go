package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// amount accepts a JSON number or a string such as "$1,200". set stays false
// when the field is absent or null.
type amount struct {
	decimal.Decimal
	set bool
}

func (a *amount) UnmarshalJSON(b []byte) error {
	d, ok, err := unmarshalMoney(b, core.ParseAmount)
	a.Decimal, a.set = d, ok
	return err
}

// budget is an amount that may not be negative.
type budget struct {
	decimal.Decimal
	set bool
}

func (a *budget) UnmarshalJSON(b []byte) error {
	d, ok, err := unmarshalMoney(b, core.ParseBudget)
	a.Decimal, a.set = d, ok
	return err
}

func unmarshalMoney(b []byte, parse func(string) (decimal.Decimal, error)) (decimal.Decimal, bool, error) {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return decimal.Zero, false, nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return decimal.Zero, false, err
		}
	}
	d, err := parse(raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

func required(field string, set bool) error {
	if !set {
		return fmt.Errorf("%w: %s is required", errBadRequest, field)
	}
	return nil
}

type (
	projectRequest struct {
		Name        string `json:"name"`
		Emoji       string `json:"emoji"`
		TotalBudget budget `json:"totalBudget"`
	}

	categoryRequest struct {
		Name   string `json:"name"`
		Emoji  string `json:"emoji"`
		Budget budget `json:"budget"`
	}

	transactionRequest struct {
		Category        core.CategoryRef `json:"subCategoryId"`
		PaymentMethodID string           `json:"paymentMethodId"`
		Name            string           `json:"name"`
		Amount          amount           `json:"amount"`
		// Date is YYYY-MM-DD in the server's timezone; empty means now.
		Date string `json:"date"`
	}

	paymentMethodRequest struct {
		Name         string                   `json:"name"`
		Emoji        string                   `json:"emoji"`
		StatementDay int                      `json:"statementDay"`
		CycleConfig  *core.PaymentCycleConfig `json:"cycleConfig"`
	}

	collapsedRequest struct {
		Collapsed bool `json:"collapsed"`
	}

	themeRequest struct {
		ThemeID string `json:"themeId"`
	}
)

func (r projectRequest) validate() error     { return required("totalBudget", r.TotalBudget.set) }
func (r categoryRequest) validate() error    { return required("budget", r.Budget.set) }
func (r transactionRequest) validate() error { return required("amount", r.Amount.set) }

// validator is implemented by requests with mandatory fields.
type validator interface {
	validate() error
}

// decodeJSON reads a size-limited JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	if v, ok := v.(validator); ok {
		return v.validate()
	}
	return nil
}

func parseYear(r *http.Request) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(r.PathValue("year")))
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("%w: invalid year %q", errBadRequest, r.PathValue("year"))
	}
	return y, nil
}

// parseDate parses YYYY-MM-DD as noon in loc so the calendar day survives
// timezone conversions. Empty input yields the zero time.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", errBadRequest, s)
	}
	return d.Add(12 * time.Hour), nil
}

// confirmed reports whether the caller acknowledged a destructive operation.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
