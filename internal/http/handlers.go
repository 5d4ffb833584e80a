package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"expensetracker/internal/auth"
	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports whether templates are loaded and the database answers
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := map[string]string{"templates": "ok", "database": "ok"}

	if len(s.templates) == 0 {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	if s.deps.Ready != nil {
		if err := s.deps.Ready(ctx); err != nil {
			checks["database"] = "failed: " + err.Error()
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.Summaries.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.serverError(w, r, err, applog.OpRead)
		return
	}
	s.render(w, r, http.StatusOK, "home", s.page(r, "Dashboard", summary))
}

// handleTransactionExport streams the caller's transactions as a workbook.
func (s *Server) handleTransactionExport(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	txs, err := s.deps.Transactions.List(r.Context(), userID)
	if err != nil {
		s.serverError(w, r, err, applog.OpExport)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTransactions(&buf, txs); err != nil {
		s.serverError(w, r, err, applog.OpExport)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="transactions-`+time.Now().UTC().Format("2006-01-02")+`.xlsx"`)
	_, _ = buf.WriteTo(w)
}
