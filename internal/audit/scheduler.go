package audit

// scheduler.go runs the retention purge for the audit trail.
//
// The job runs once on start and then every interval until the context is
// cancelled. A failed purge is logged and retried on the next tick; it never
// stops the server.

import (
	"context"
	"log/slog"
	"time"
)

// Purger deletes expired audit entries.
type Purger interface {
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

// RunPurgeScheduler purges entries older than retentionDays every interval.
func RunPurgeScheduler(ctx context.Context, p Purger, retentionDays int, interval time.Duration) {
	slog.Info("audit purge scheduler started",
		"retention_days", retentionDays,
		"interval", interval,
	)

	runPurge(ctx, p, retentionDays)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit purge scheduler stopped")
			return
		case <-ticker.C:
			runPurge(ctx, p, retentionDays)
		}
	}
}

// runPurge performs one purge cycle.
func runPurge(ctx context.Context, p Purger, retentionDays int) {
	start := time.Now()
	purged, err := p.Purge(ctx, retentionDays)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return
	}
	slog.Info("purged audit entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
