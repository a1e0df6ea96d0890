package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// handleNewProduct opens an empty create form.
func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.CreateModal(core.PayloadForm{}))
}

// handleProductDetail opens the detail modal, editable with ?edit=1.
// Unknown ids show the controller's "Item not found" warning.
func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())

	id, err := productID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	p, err := ctrl.Detail(id)
	if err != nil {
		if isHTMX(r) {
			retargetAlert(w)
			renderStatus(w, r, core.HTTPStatus(err), templates.Alert(ctrl.View().Alert))
			return
		}
		s.respondError(w, r, err, core.HTTPStatus(err))
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, p)
		return
	}
	render(w, r, templates.DetailModal(p, r.URL.Query().Get("edit") == "1"))
}

// handleCreateProduct submits the create form. On success the modal closes
// and the refreshed table shows; on failure the modal stays open and the
// table shows the error alert.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())
	ctx := WithRequestMetadata(r.Context(), r)

	view, err := ctrl.Create(ctx, formFromRequest(r))
	s.respondMutation(w, r, view, err, http.StatusCreated)
}

// handleUpdateProduct submits the edit form of one product.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r.Context())

	id, err := productID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	view, err := ctrl.Update(ctx, id, formFromRequest(r))
	s.respondMutation(w, r, view, err, http.StatusOK)
}

func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, view core.View, err error, okStatus int) {
	if wantsJSON(r) {
		if err != nil {
			s.respondError(w, r, err, core.HTTPStatus(err))
			return
		}
		writeJSON(w, okStatus, view)
		return
	}
	render(w, r, templates.TableRegion(view, err == nil))
}
