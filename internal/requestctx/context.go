// Package requestctx carries request-scoped values from middleware to services
// without an HTTP dependency.
//
// Middleware sets values:
//
//	ctx = requestctx.WithPrincipal(ctx, p)
//	ctx = requestctx.WithClient(ctx, ip, userAgent)
//
// Services read them:
//
//	p, ok := requestctx.Principal(ctx)
package requestctx

import (
	"context"

	"kycdesk/internal/models"
)

type (
	principalKey struct{}
	clientIPKey  struct{}
	userAgentKey struct{}
)

// WithPrincipal injects the authenticated caller.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// Principal returns the authenticated caller, if any.
func Principal(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}

// WithClient injects the caller's network address and raw User-Agent header.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, ip)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// ClientIP returns "" when not set.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// UserAgent returns "" when not set.
func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}
