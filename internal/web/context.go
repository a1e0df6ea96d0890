package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for the audit trail.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already rewritten by TrustedRealIP
	ctx = core.ContextWithIPAddress(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
