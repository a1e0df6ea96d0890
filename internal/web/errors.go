package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (HTMX, JSON, or plain text)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request and session ids
//  5. User message is rendered in appropriate format for the client
//
// Failures the table already reports through its alert (a failed refresh or
// mutation) do not come through here; those handlers re-render the table.

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (HTMX, JSON, or plain text).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	level := logging.LevelForStatus(statusCode)
	if !core.IsUserFacing(err) && level < slog.LevelError {
		// Unmapped errors are unexpected whatever status they carry.
		level = slog.LevelError
	}
	logger := logging.WithFields(r.Context(), "path", r.URL.Path, "method", r.Method)
	logger.Log(r.Context(), level, "request error",
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	switch {
	case wantsJSON(r):
		respondErrorJSON(w, userMsg, statusCode)
	case isHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	default:
		respondErrorText(w, err, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorText writes err as a plain text body for full page loads.
func respondErrorText(w http.ResponseWriter, err error, statusCode int) {
	http.Error(w, core.FormatUserError(err), statusCode)
}

// renderErrorPartial swaps an error alert into the page's alert slot,
// whatever element the triggering control targeted.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	retargetAlert(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorAlert(msg).Render(r.Context(), w)
}

// retargetAlert tells htmx to replace #alert instead of the request's target.
func retargetAlert(w http.ResponseWriter) {
	w.Header().Set("HX-Retarget", "#alert")
	w.Header().Set("HX-Reswap", "outerHTML")
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if isHTMX(r) {
		return false
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
