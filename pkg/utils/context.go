package utils

import (
	"context"

	"game-review/pkg/token"
)

type contextKey string

const (
	// PrincipalKey holds the authenticated claims attached by the auth middleware
	PrincipalKey contextKey = "principal"
)

// SetPrincipalContext attaches the verified token claims to the context
func SetPrincipalContext(ctx context.Context, principal *token.Claims) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// GetPrincipalFromContext returns the authenticated principal, if any
func GetPrincipalFromContext(ctx context.Context) (*token.Claims, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*token.Claims)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
