package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// sessionCookie holds the browser session id.
const sessionCookie = "catalog_session"

type ctxKey int

const controllerKey ctxKey = iota

// withSession resolves the caller's controller from the session cookie.
// Only the page itself starts a new session; any other request without a
// live session is sent back to the page.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		ctrl, ok := s.sessions.Lookup(id)
		if !ok {
			if !startsSession(r) {
				s.sessionMissing(w, r)
				return
			}
			id, ctrl = s.sessions.Start()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := core.ContextWithSessionID(r.Context(), id)
		ctx = context.WithValue(ctx, controllerKey, ctrl)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func startsSession(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/"
}

// sessionMissing sends a caller without a live session back to the page in
// whatever form its client follows.
func (s *Server) sessionMissing(w http.ResponseWriter, r *http.Request) {
	switch {
	case isHTMX(r):
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
	case wantsJSON(r):
		s.respondError(w, r, core.ErrNoSession, http.StatusUnauthorized)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// controllerFrom returns the session controller stored by withSession.
func controllerFrom(ctx context.Context) *core.Controller {
	ctrl, _ := ctx.Value(controllerKey).(*core.Controller)
	return ctrl
}
