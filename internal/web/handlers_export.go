package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

// handleExport downloads the visible page as CSV. With nothing to export a
// browser is sent back to the page, where the warning alert is showing.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, data, err := controllerFrom(r.Context()).Export()
	if err != nil {
		if errors.Is(err, core.ErrNothingToExport) && !wantsJSON(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.respondError(w, r, err, core.HTTPStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "file", name, "error", err)
	}
}
