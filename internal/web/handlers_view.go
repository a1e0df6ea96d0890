package web

// handlers_view.go serves the page and the table transitions. Every
// transition answers with the re-rendered table region plus the alert slot.

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the full page. The first visit of a session loads the records.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())

	var view core.View
	if ctrl.Loaded() {
		view = ctrl.View()
	} else {
		view = refresh(r, ctrl)
	}
	render(w, r, templates.Page(view))
}

// handleTable re-renders the current view without changing state.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.TableRegion(controllerFrom(r.Context()).View(), false))
}

// handleSort applies a click on a column's sort control.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field, err := core.ParseSortField(chi.URLParam(r, "field"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	view, err := controllerFrom(r.Context()).SortClick(field)
	if err != nil {
		s.respondError(w, r, err, core.HTTPStatus(err))
		return
	}
	render(w, r, templates.TableRegion(view, false))
}

// handleSearch feeds one search input through the debouncer. Inputs replaced
// by a later keystroke answer 204 so htmx leaves the page alone.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	view, err := controllerFrom(r.Context()).Search(r.Context(), r.FormValue("q"))
	switch {
	case errors.Is(err, core.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		s.respondError(w, r, err, core.HTTPStatus(err))
		return
	}
	render(w, r, templates.TableRegion(view, false))
}

// handlePageSize changes rows per page. Unsupported sizes fall back to the default.
func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(r.FormValue("size"))
	if err != nil {
		logging.FromContext(r.Context()).Debug("invalid page size, using default", "size", r.FormValue("size"))
	}
	render(w, r, templates.TableRegion(controllerFrom(r.Context()).SetPageSize(size), false))
}

// handlePage navigates to a page; out-of-range pages are clamped.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	render(w, r, templates.TableRegion(controllerFrom(r.Context()).GoToPage(page), false))
}

// handleRefresh reloads the records from the product API.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.TableRegion(refresh(r, controllerFrom(r.Context())), false))
}

// handleClearAlert dismisses the alert.
func (s *Server) handleClearAlert(w http.ResponseWriter, r *http.Request) {
	controllerFrom(r.Context()).ClearAlert()
	render(w, r, templates.Alert(nil))
}
