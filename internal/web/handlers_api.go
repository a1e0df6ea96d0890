package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// handleAPIView returns the caller's current view as JSON.
func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	view := ctrl.View()
	if !ctrl.Loaded() {
		view = refresh(r, ctrl)
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAuditLog returns the most recent audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeJSON(w, http.StatusOK, []core.AuditEntry{})
		return
	}

	limit := min(parseIntParam(r, "limit", 100), maxAuditLimit)
	entries, err := s.audit.Recent(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Audit    bool   `json:"audit"`
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.sessions.Len(),
		Audit:    s.audit != nil,
	})
}
