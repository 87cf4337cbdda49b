package http

import (
	"net/http"

	"budgetpro/internal/services"
)

func (s *Server) transactionInput(w http.ResponseWriter, r *http.Request) (services.TransactionInput, error) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return services.TransactionInput{}, err
	}
	date, err := parseDate(req.Date, s.loc)
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Category:        req.Category,
		PaymentMethodID: sanitizeInput(req.PaymentMethodID),
		Name:            sanitizeInput(req.Name),
		Amount:          req.Amount.Decimal,
		Date:            date,
	}, nil
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := s.transactionInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := s.svc.AddTransaction(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionView(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := s.transactionInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := s.svc.UpdateTransaction(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionView(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
