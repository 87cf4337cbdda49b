package http

import (
	"fmt"
	"net/http"

	"budgetpro/internal/services"
)

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"revision": s.svc.Revision(),
		"store":    s.svc.Snapshot(),
	})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.SetTheme(r.Context(), sanitizeInput(req.ThemeID)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.CreateProject(r.Context(), services.ProjectInput{
		Name:        sanitizeInput(req.Name),
		Emoji:       sanitizeInput(req.Emoji),
		TotalBudget: req.TotalBudget.Decimal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProjectView(p))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.svc.Project(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ps, err := s.svc.ProjectStats(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"project": newProjectView(p),
		"stats":   newStatsView(ps),
	})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.UpdateProject(r.Context(), r.PathValue("id"), services.ProjectInput{
		Name:        sanitizeInput(req.Name),
		Emoji:       sanitizeInput(req.Emoji),
		TotalBudget: req.TotalBudget.Decimal,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectView(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	plan, err := s.svc.PlanDeleteProject(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	warning := fmt.Sprintf("Deleting this project permanently removes %d categories and %d transactions.",
		len(plan.Categories), len(plan.Transactions))
	if !requireConfirmation(w, r, warning, plan) {
		return
	}
	done, err := s.svc.DeleteProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impactOf(done))
}

func (s *Server) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	ps, err := s.svc.ProjectStats(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStatsView(ps))
}

func (s *Server) handlePaymentCycles(w http.ResponseWriter, r *http.Request) {
	cs, err := s.svc.PaymentCycleStats(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCycleViews(cs))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	bars, err := s.svc.Chart(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bars)
}

func (s *Server) handleProjectTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.ProjectTransactions(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionViews(txs))
}
