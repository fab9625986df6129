// Package identity carries the authenticated caller through a request context.
package identity

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
)

type contextKey int

const (
	claimsKey contextKey = iota
	tokenKey
)

func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.Claims)
	return claims, ok && claims != nil
}

// WithToken stores the raw bearer token so it can be forwarded to the backend.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// Principal returns the caller's principal, or "" for anonymous requests.
func Principal(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.Principal
	}

	return ""
}
