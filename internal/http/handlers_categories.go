package http

import (
	"fmt"
	"net/http"

	"budgetpro/internal/core"
	"budgetpro/internal/services"
)

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	projectID := r.PathValue("id")
	st, err := s.svc.AddCategory(r.Context(), services.CategoryInput{
		ProjectID: projectID,
		Name:      sanitizeInput(req.Name),
		Emoji:     sanitizeInput(req.Emoji),
		Budget:    req.Budget.Decimal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st.CategoriesOf(projectID))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.svc.UpdateCategory(r.Context(), r.PathValue("id"), services.CategoryInput{
		Name:   sanitizeInput(req.Name),
		Emoji:  sanitizeInput(req.Emoji),
		Budget: req.Budget.Decimal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	plan, err := s.svc.PlanDeleteCategory(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	warning := fmt.Sprintf("Deleting this category also removes it from %d later months and permanently deletes %d transactions.",
		len(plan.Categories)-1, len(plan.Transactions))
	if !requireConfirmation(w, r, warning, plan) {
		return
	}
	done, err := s.svc.DeleteCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impactOf(done))
}

// handleCategoryHistory accepts a category id or a free-money-<project> id.
func (s *Server) handleCategoryHistory(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.History(core.ParseCategoryRef(r.PathValue("id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionViews(txs))
}
