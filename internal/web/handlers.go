package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/csvsieve/csvsieve/internal/core"
	"github.com/csvsieve/csvsieve/internal/logging"
	"github.com/go-chi/chi/v5"
)

// createSessionRequest is the body for POST /api/sessions. Rules is kept
// raw so the rule parser sees exactly what the client sent.
type createSessionRequest struct {
	CSV   string          `json:"csv"`
	Rules json.RawMessage `json:"rules"`
}

type createSessionResponse struct {
	ID          string `json:"id"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	TotalErrors int    `json:"totalErrors"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Process.MaxBodySize)

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	sess, err := s.store.Create(req.CSV, string(req.Rules))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, core.ErrTooManySessions) {
			status = http.StatusTooManyRequests
		}
		s.respondError(w, r, err, status)
		return
	}

	logging.FromContext(r.Context()).Info("session created",
		"session_id", sess.ID,
		"rows", sess.RowCount(),
		"columns", len(sess.Headers()),
	)

	w.WriteHeader(http.StatusCreated)
	s.writeJSON(w, r, createSessionResponse{
		ID:          sess.ID,
		Rows:        sess.RowCount(),
		Columns:     len(sess.Headers()),
		TotalErrors: sess.CountErrors(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}

	s.writeJSON(w, r, sess.Summarize())
}

type bulkFixRequest struct {
	Column  string `json:"column"`
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

func (s *Server) handleBulkFix(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}

	var req bulkFixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	total := sess.ApplyBulkFix(req.Column, req.Find, req.Replace)

	logging.FromContext(r.Context()).Info("bulk fix applied",
		"session_id", sess.ID,
		"column", req.Column,
		"total_errors", total,
	)

	s.writeJSON(w, r, map[string]int{"totalErrors": total})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}

	res, err := sess.SplitExport()
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, r, res)
}

// handleExportDownload serves one half of the split as a CSV attachment.
// The part path segment is "valid.csv" or "invalid.csv".
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}

	part := chi.URLParam(r, "part")
	if part != "valid.csv" && part != "invalid.csv" {
		respondErrorJSON(w, core.UserMessage{
			Code:    "GEN001",
			Message: "Unknown export part",
			Action:  "Request valid.csv or invalid.csv",
		}, http.StatusNotFound)
		return
	}

	res, err := sess.SplitExport()
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	body := res.Valid
	if part == "invalid.csv" {
		body = res.Invalid
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", part))
	w.Write([]byte(body))
}

type publishRequest struct {
	Table string `json:"table"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		respondErrorJSON(w, core.UserMessage{
			Code:    "PUB001",
			Message: "Publishing is not configured",
			Action:  "Set DATABASE_URL on the server to enable publishing",
		}, http.StatusServiceUnavailable)
		return
	}

	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}
	if req.Table == "" {
		respondErrorJSON(w, core.UserMessage{
			Code:    "PUB002",
			Message: "A target table name is required",
			Action:  "Provide a table name in the request body",
		}, http.StatusBadRequest)
		return
	}

	headers, rows := sess.ValidSnapshot()

	logger := logging.WithFields(r.Context(),
		"session_id", sess.ID,
		"table", req.Table,
	)
	logger.Info("publish started", "rows", len(rows))

	inserted, err := s.publisher.Publish(r.Context(), req.Table, headers, rows)
	if err != nil {
		logger.Error("publish failed", "error", err)
		respondErrorJSON(w, core.UserMessage{
			Code:    "PUB003",
			Message: "Publishing to the database failed",
			Action:  "Check the server logs and database connectivity",
		}, http.StatusBadGateway)
		return
	}

	logger.Info("publish completed", "rows", inserted)

	s.writeJSON(w, r, map[string]any{
		"table": req.Table,
		"rows":  inserted,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.store.Delete(id); err != nil {
		s.respondError(w, r, err, statusForSessionError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// session resolves the sessionID path parameter against the store.
func (s *Server) session(r *http.Request) (*core.Session, error) {
	return s.store.Get(chi.URLParam(r, "sessionID"))
}
