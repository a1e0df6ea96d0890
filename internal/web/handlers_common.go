package web

// handlers_common.go holds helpers shared by the handlers.

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxAuditLimit caps the limit query parameter of the audit log.
const maxAuditLimit = 1000

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// productID parses the {id} route parameter.
func productID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("product %q not found", raw)
	}
	return id, nil
}

// formFromRequest reads the create/edit form fields. Nothing is validated here;
// the controller normalizes prices, categories and image lists.
func formFromRequest(r *http.Request) core.PayloadForm {
	return core.PayloadForm{
		Title:       r.FormValue("title"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("categoryId"),
		Images:      r.FormValue("images"),
	}
}

// render writes an HTML component with status 200.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

// renderStatus writes an HTML component with the given status.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// refresh reloads the controller's records. Failures are already in the
// view's alert, so they are only logged.
func refresh(r *http.Request, ctrl *core.Controller) core.View {
	view, err := ctrl.Refresh(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, core.ErrStaleResponse):
		logging.FromContext(r.Context()).Debug("refresh superseded by a newer one")
	default:
		logging.FromContext(r.Context()).Warn("product refresh failed", "error", err)
	}
	return view
}
