// Package audit records successful product mutations in PostgreSQL.
//
// The admin table itself keeps no state beyond the browser session; the audit
// trail is the only thing written to a database, and it is optional. When no
// DATABASE_URL is configured the server runs with core.NopAuditor instead.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultRecentLimit caps Recent when the caller passes no limit.
const DefaultRecentLimit = 100

const schemaSQL = `
CREATE TABLE IF NOT EXISTS product_audit_log (
	id          TEXT PRIMARY KEY,
	action      TEXT NOT NULL,
	severity    TEXT NOT NULL,
	product_id  INTEGER NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	payload     JSONB,
	ip_address  TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS product_audit_log_created_at_idx ON product_audit_log (created_at DESC);
`

// Store is a PostgreSQL-backed audit trail.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open connects to the audit database, verifies the connection and creates
// the audit table if needed.
func Open(ctx context.Context, cfg config.AuditConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := NewStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the audit table and index if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// NewEntry builds the audit entry for m, taking request metadata from ctx.
func NewEntry(ctx context.Context, m core.Mutation, at time.Time) core.AuditEntry {
	return core.AuditEntry{
		ID:        uuid.NewString(),
		Action:    m.Action,
		Severity:  core.SeverityOf(m.Action),
		ProductID: m.ProductID,
		Title:     m.Payload.Title,
		Payload:   m.Payload,
		IPAddress: core.GetIPAddressFromContext(ctx),
		UserAgent: core.GetUserAgentFromContext(ctx),
		CreatedAt: at.UTC(),
	}
}

// Record implements core.Auditor.
func (s *Store) Record(ctx context.Context, m core.Mutation) error {
	entry := NewEntry(ctx, m, s.now())

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO product_audit_log
			(id, action, severity, product_id, title, payload, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, string(entry.Action), string(entry.Severity), entry.ProductID, entry.Title,
		payload, entry.IPAddress, entry.UserAgent, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	slog.Debug("audit entry recorded", "id", entry.ID, "action", entry.Action, "product_id", entry.ProductID)
	return nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]core.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, action, severity, product_id, title, payload, ip_address, user_agent, created_at
		FROM product_audit_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return entries, nil
}

// Purge deletes entries older than retentionDays and returns how many were removed.
func (s *Store) Purge(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	tag, err := s.pool.Exec(ctx, `DELETE FROM product_audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit log: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.CollectableRow) (core.AuditEntry, error) {
	var (
		e       core.AuditEntry
		action  string
		sev     string
		payload []byte
	)
	if err := row.Scan(&e.ID, &action, &sev, &e.ProductID, &e.Title, &payload, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
		return e, err
	}
	e.Action = core.AuditAction(action)
	e.Severity = core.AuditSeverity(sev)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return e, fmt.Errorf("decode payload of %s: %w", e.ID, err)
		}
	}
	return e, nil
}

var _ core.Auditor = (*Store)(nil)
