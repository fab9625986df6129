package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/kirana-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authTestKey = []byte("test-secret-key-123456789012345")

func setupAuth(t *testing.T, maxAttempts int64) service.AuthService {
	t.Helper()

	_, client := newTestRedis(t)
	cfg := &config.Config{RateConfig: config.RateConfig{MaxAttempts: maxAttempts, WindowSize: time.Minute}}
	c := cacheFor(client)

	return service.NewAuthService(repository.NewRateLimitRepo(client, cfg), c, authTestKey, time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Issues a verifiable token", func(t *testing.T) {
		auth := setupAuth(t, 5)

		resp, err := auth.Login(ctx, &models.LoginRequest{Principal: "  rdmx6-jaaaa-aaaaa  "})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 3600, resp.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return authTestKey, nil })
		require.NoError(t, err)
		assert.Equal(t, "rdmx6-jaaaa-aaaaa", claims.Principal)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Success - Each login gets a distinct token id", func(t *testing.T) {
		auth := setupAuth(t, 5)

		a, err := auth.Login(ctx, &models.LoginRequest{Principal: "principal-a"})
		require.NoError(t, err)
		b, err := auth.Login(ctx, &models.LoginRequest{Principal: "principal-a"})
		require.NoError(t, err)

		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		auth := setupAuth(t, 1)

		// the first attempt already fills the window
		resp, err := auth.Login(ctx, &models.LoginRequest{Principal: "principal-b"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Contains(t, resp.Message, "Too many login attempts")
		assert.Positive(t, resp.RetryAfter)
	})

	t.Run("Failure - Blank principal", func(t *testing.T) {
		auth := setupAuth(t, 5)

		_, err := auth.Login(ctx, &models.LoginRequest{Principal: "     "})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Revoked token is reported", func(t *testing.T) {
		auth := setupAuth(t, 5)
		claims := &models.Claims{
			Principal: "principal-c",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		revoked, err := auth.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, auth.Logout(ctx, claims))

		revoked, err = auth.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success - Expired token needs no revocation", func(t *testing.T) {
		auth := setupAuth(t, 5)
		claims := &models.Claims{
			Principal: "principal-c",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-2",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}

		require.NoError(t, auth.Logout(ctx, claims))

		revoked, err := auth.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Failure - Token without id", func(t *testing.T) {
		auth := setupAuth(t, 5)

		err := auth.Logout(ctx, &models.Claims{Principal: "p"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})
}
