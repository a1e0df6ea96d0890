package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/catalog-admin/internal/audit"
	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"api_url", cfg.Catalog.APIURL,
		"page_sizes", cfg.View.PageSizes,
		"audit_enabled", cfg.Audit.Enabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	api := catalog.New(cfg.Catalog.APIURL, cfg.Catalog.Timeout, catalog.WithLogger(slog.Default()))

	// Optional audit trail
	var (
		auditor  core.Auditor = core.NopAuditor{}
		auditLog web.AuditLog
	)
	if cfg.Audit.Enabled() {
		store, err := audit.Open(jobCtx, cfg.Audit)
		if err != nil {
			slog.Error("failed to open audit database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("audit trail enabled", "retention_days", cfg.Audit.RetentionDays)

		auditor, auditLog = store, store
		go audit.RunPurgeScheduler(jobCtx, store, cfg.Audit.RetentionDays, cfg.Audit.PurgeInterval)
	}

	sessions := core.NewSessions(func() *core.Controller {
		return core.NewController(api, core.ControllerConfig{
			PageSizes:       cfg.View.PageSizes,
			DefaultPageSize: cfg.View.DefaultPageSize,
			DebounceWindow:  cfg.View.SearchDebounce,
			Auditor:         auditor,
		})
	}, cfg.View.SessionIdleTimeout)
	go sessions.RunJanitor(jobCtx, cfg.View.SessionIdleTimeout/2)

	server := web.NewServer(sessions, auditLog, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
