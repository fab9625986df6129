package identity_test

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/identity"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims(t *testing.T) {
	t.Run("Success - Round trip", func(t *testing.T) {
		claims := &models.Claims{Principal: "aaaaa-bbbbb-ccccc"}
		ctx := identity.WithClaims(context.Background(), claims)

		got, ok := identity.ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, claims, got)
		assert.Equal(t, "aaaaa-bbbbb-ccccc", identity.Principal(ctx))
	})

	t.Run("Success - Anonymous context", func(t *testing.T) {
		_, ok := identity.ClaimsFromContext(context.Background())

		assert.False(t, ok)
		assert.Empty(t, identity.Principal(context.Background()))
	})

	t.Run("Success - Nil claims are treated as anonymous", func(t *testing.T) {
		ctx := identity.WithClaims(context.Background(), nil)

		_, ok := identity.ClaimsFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestToken(t *testing.T) {
	ctx := identity.WithToken(context.Background(), "abc.def.ghi")

	assert.Equal(t, "abc.def.ghi", identity.TokenFromContext(ctx))
	assert.Empty(t, identity.TokenFromContext(context.Background()))
}
