// Package web provides the HTTP server and handlers for the product catalog admin UI.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	mw "github.com/JonMunkholm/catalog-admin/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuditLog lists recorded mutations. It is nil when auditing is disabled.
type AuditLog interface {
	Recent(ctx context.Context, limit int) ([]core.AuditEntry, error)
}

// Server is the HTTP server for the catalog admin UI.
type Server struct {
	sessions *core.Sessions
	audit    AuditLog
	cfg      *config.Config
	limiter  *mw.RateLimiter
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a server over sessions. auditLog may be nil.
func NewServer(sessions *core.Sessions, auditLog AuditLog, cfg *config.Config) *Server {
	s := &Server{
		sessions: sessions,
		audit:    auditLog,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(mw.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(s.limiter.Middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	// Everything below works on the caller's browser session.
	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		// Page
		r.Get("/", s.handleIndex)

		// Table transitions, each answering with the re-rendered table region
		r.Route("/ui", func(r chi.Router) {
			r.Get("/table", s.handleTable)
			r.Post("/sort/{field}", s.handleSort)
			r.Post("/search", s.handleSearch)
			r.Post("/page-size", s.handlePageSize)
			r.Post("/page/{page}", s.handlePage)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/alert/clear", s.handleClearAlert)
		})

		// Products
		r.Get("/products/new", s.handleNewProduct)
		r.Get("/products/{id}", s.handleProductDetail)
		r.Post("/products", s.handleCreateProduct)
		r.Put("/products/{id}", s.handleUpdateProduct)

		// Export of the visible page
		r.Get("/export.csv", s.handleExport)

		r.With(mw.APIKeyAuth(&s.cfg.Security)).Get("/api/view", s.handleAPIView)
	})

	s.router.With(mw.APIKeyAuth(&s.cfg.Security)).Get("/api/audit-log", s.handleAuditLog)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Close()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
