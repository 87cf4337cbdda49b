package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"budgetpro/internal/core"
	applog "budgetpro/internal/log"
	"budgetpro/internal/propagation"
	"budgetpro/internal/services"
	"budgetpro/internal/stats"
)

type (
	errorBody struct {
		Error   string  `json:"error"`
		Warning string  `json:"warning,omitempty"`
		Impact  *impact `json:"impact,omitempty"`
	}

	// impact counts what a cascade delete would remove.
	impact struct {
		Years        int `json:"years"`
		Projects     int `json:"projects"`
		Categories   int `json:"categories"`
		Transactions int `json:"transactions"`
	}

	projectView struct {
		core.Project
		DisplayName        string `json:"displayName"`
		TotalBudgetDisplay string `json:"totalBudgetDisplay"`
	}

	statView struct {
		stats.SubCategoryStat
		BudgetDisplay    string `json:"budgetDisplay"`
		SpentDisplay     string `json:"spentDisplay"`
		RemainingDisplay string `json:"remainingDisplay"`
	}

	statsView struct {
		TotalBudget           string     `json:"totalBudget"`
		TotalSpent            string     `json:"totalSpent"`
		TotalRemaining        string     `json:"totalRemaining"`
		TotalBudgetDisplay    string     `json:"totalBudgetDisplay"`
		TotalSpentDisplay     string     `json:"totalSpentDisplay"`
		TotalRemainingDisplay string     `json:"totalRemainingDisplay"`
		SubStats              []statView `json:"subStats"`
	}

	cycleView struct {
		stats.PaymentCycleStat
		TotalDisplay string `json:"totalDisplay"`
	}

	transactionView struct {
		core.Transaction
		AmountDisplay string `json:"amountDisplay"`
	}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to statuses. Unknown errors are logged and
// hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	errType := applog.ErrorTypeInternal
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, services.ErrInvalidInput):
		status, errType = http.StatusBadRequest, applog.ErrorTypeValidation
	case errors.Is(err, services.ErrNotFound):
		status, errType = http.StatusNotFound, applog.ErrorTypeNotFound
	case errors.Is(err, services.ErrCurrentYear), errors.Is(err, services.ErrProtectedMethod):
		status, errType = http.StatusConflict, applog.ErrorTypeConflict
	}

	ctx := r.Context()
	logger := applog.FromContext(ctx)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed", applog.FieldError, err, applog.FieldErrorType, errType)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	logger.DebugContext(ctx, "Request rejected", applog.FieldError, err, applog.FieldErrorType, errType)
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// requireConfirmation answers 409 with a warning unless the request carries
// confirm=true.
func requireConfirmation(w http.ResponseWriter, r *http.Request, warning string, plan propagation.Removal) bool {
	if confirmed(r) {
		return true
	}
	writeJSON(w, http.StatusConflict, errorBody{
		Error:   "confirmation required: repeat the request with ?confirm=true",
		Warning: warning,
		Impact:  impactOf(plan),
	})
	return false
}

func impactOf(plan propagation.Removal) *impact {
	return &impact{
		Years:        len(plan.Years),
		Projects:     len(plan.Projects),
		Categories:   len(plan.Categories),
		Transactions: len(plan.Transactions),
	}
}

func newProjectView(p core.Project) projectView {
	return projectView{
		Project:            p,
		DisplayName:        p.DisplayName(),
		TotalBudgetDisplay: core.FormatCurrency(p.TotalBudget),
	}
}

func newStatsView(ps stats.ProjectStats) statsView {
	v := statsView{
		TotalBudget:           ps.TotalBudget.String(),
		TotalSpent:            ps.TotalSpent.String(),
		TotalRemaining:        ps.TotalRemaining.String(),
		TotalBudgetDisplay:    core.FormatCurrency(ps.TotalBudget),
		TotalSpentDisplay:     core.FormatCurrency(ps.TotalSpent),
		TotalRemainingDisplay: core.FormatCurrency(ps.TotalRemaining),
		SubStats:              make([]statView, 0, len(ps.SubStats)),
	}
	for _, st := range ps.SubStats {
		v.SubStats = append(v.SubStats, statView{
			SubCategoryStat:  st,
			BudgetDisplay:    core.FormatCurrency(st.Budget),
			SpentDisplay:     core.FormatCurrency(st.Spent),
			RemainingDisplay: core.FormatCurrency(st.Remaining),
		})
	}
	return v
}

func newCycleViews(cs []stats.PaymentCycleStat) []cycleView {
	out := make([]cycleView, 0, len(cs))
	for _, c := range cs {
		out = append(out, cycleView{PaymentCycleStat: c, TotalDisplay: core.FormatCurrency(c.Total)})
	}
	return out
}

func newTransactionViews(txs []core.Transaction) []transactionView {
	out := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		out = append(out, newTransactionView(t))
	}
	return out
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{Transaction: t, AmountDisplay: core.FormatCurrency(t.Amount)}
}
