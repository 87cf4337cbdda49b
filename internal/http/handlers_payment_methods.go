package http

import (
	"fmt"
	"net/http"

	"budgetpro/internal/core"
	"budgetpro/internal/propagation"
	"budgetpro/internal/services"
)

func methodInput(req paymentMethodRequest) services.PaymentMethodInput {
	return services.PaymentMethodInput{
		Name:         sanitizeInput(req.Name),
		Emoji:        sanitizeInput(req.Emoji),
		StatementDay: req.StatementDay,
		CycleConfig:  req.CycleConfig,
	}
}

func (s *Server) handleAddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.svc.AddPaymentMethod(r.Context(), methodInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.svc.UpdatePaymentMethod(r.Context(), r.PathValue("id"), methodInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == core.CashMethodID {
		writeError(w, r, services.ErrProtectedMethod)
		return
	}
	st := s.svc.Snapshot()
	if _, ok := st.PaymentMethod(id); !ok {
		writeError(w, r, fmt.Errorf("payment method %q: %w", id, services.ErrNotFound))
		return
	}
	used := 0
	for _, t := range st.Transactions {
		if t.PaymentMethodID == id {
			used++
		}
	}
	warning := fmt.Sprintf("%d transactions paid with this method will keep their amounts but lose the payment method.", used)
	if !requireConfirmation(w, r, warning, propagation.Removal{}) {
		return
	}
	if err := s.svc.DeletePaymentMethod(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
