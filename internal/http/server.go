// Package http exposes the budget service as a JSON API for the presentation
// layer.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	applog "budgetpro/internal/log"
	"budgetpro/internal/services"
)

type Server struct {
	http.Server
	svc        *services.BudgetService
	loc        *time.Location
	writes     *writeLimiter
	suspicious atomic.Int64

	shutdownOnce sync.Once
}

// Options tunes a Server. The zero value serves in UTC with the default
// logger and write limits.
type Options struct {
	Location        *time.Location
	Logger          *applog.Logger
	WritesPerMinute int
	WriteBurst      int
}

// NewServer registers every route and returns a ready-to-run server.
func NewServer(addr string, svc *services.BudgetService, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		svc:    svc,
		loc:    opts.Location,
		writes: newWriteLimiter(opts.WritesPerMinute, opts.WriteBurst),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/store", s.handleGetStore)
	mux.HandleFunc("PUT /api/theme", s.handleSetTheme)

	mux.HandleFunc("GET /api/years", s.handleListYears)
	mux.HandleFunc("POST /api/years/end", s.handleEndCurrentYear)
	mux.HandleFunc("POST /api/years/{year}", s.handleEnsureYear)
	mux.HandleFunc("PUT /api/years/{year}/collapsed", s.handleSetYearCollapsed)
	mux.HandleFunc("DELETE /api/years/{year}", s.handleDeleteYear)

	mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	mux.HandleFunc("GET /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /api/projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/stats", s.handleProjectStats)
	mux.HandleFunc("GET /api/projects/{id}/cycles", s.handlePaymentCycles)
	mux.HandleFunc("GET /api/projects/{id}/chart", s.handleChart)
	mux.HandleFunc("GET /api/projects/{id}/transactions", s.handleProjectTransactions)
	mux.HandleFunc("POST /api/projects/{id}/categories", s.handleAddCategory)

	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/transactions", s.handleCategoryHistory)

	mux.HandleFunc("POST /api/transactions", s.handleAddTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/payment-methods", s.handleAddPaymentMethod)
	mux.HandleFunc("PUT /api/payment-methods/{id}", s.handleUpdatePaymentMethod)
	mux.HandleFunc("DELETE /api/payment-methods/{id}", s.handleDeletePaymentMethod)

	var h http.Handler = mux
	h = s.withSecurity(h)
	h = applog.AccessLog(extractClientIP)(h)
	h = applog.RequestIDMiddleware(requestID)(h)
	h = applog.Middleware(opts.Logger.WithComponent(applog.ComponentHTTP))(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.writes.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.svc == nil {
		http.Error(w, "budget service not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics reports the store revision and what the security layer
// turned away.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"revision":           s.svc.Revision(),
		"suspiciousRequests": s.suspicious.Load(),
		"rateLimitClients":   s.writes.clients(),
		"rateLimitHits":      s.writes.rejected(),
	})
}

// requestID keeps a caller supplied X-Request-ID and generates one otherwise.
func requestID(r *http.Request) string {
	if id := sanitizeInput(r.Header.Get("X-Request-ID")); id != "" && len(id) <= 64 {
		return id
	}
	return generateRequestID()
}
