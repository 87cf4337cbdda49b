package http

import (
	"fmt"
	"net/http"
)

func (s *Server) handleListYears(w http.ResponseWriter, r *http.Request) {
	years, freeform := s.svc.Overview()
	projects := make([]projectView, 0, len(freeform))
	for _, p := range freeform {
		projects = append(projects, newProjectView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"years":    years,
		"projects": projects,
	})
}

func (s *Server) handleEnsureYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.EnsureYear(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]int{"year": year, "created": created})
}

func (s *Server) handleEndCurrentYear(w http.ResponseWriter, r *http.Request) {
	opened, err := s.svc.EndCurrentYear(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"year": opened})
}

func (s *Server) handleSetYearCollapsed(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req collapsedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.SetYearCollapsed(r.Context(), year, req.Collapsed); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// The current year is refused before any confirmation is offered.
	plan, err := s.svc.PlanDeleteYear(year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	warning := fmt.Sprintf("Deleting %d permanently removes %d months, %d categories and %d transactions.",
		year, len(plan.Projects), len(plan.Categories), len(plan.Transactions))
	if !requireConfirmation(w, r, warning, plan) {
		return
	}
	done, err := s.svc.DeleteYear(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impactOf(done))
}
