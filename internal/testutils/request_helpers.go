package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/identity"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TestSessionID is the cart session every helper request carries.
const TestSessionID = "0b8d6f1c-3a52-4e7d-9a11-5f2c7e4b9d30"

func TestClaims(principal string) *models.Claims {
	return &models.Claims{
		Principal: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "test-token-id",
			Subject:   principal,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// CreateTestRequestWithContext builds a request as it looks after the auth and
// cart session middlewares have run.
func CreateTestRequestWithContext(method, target string, body io.Reader, principal string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	ctx := identity.WithClaims(req.Context(), TestClaims(principal))
	ctx = identity.WithToken(ctx, "test-token")

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutContext builds an anonymous request that still has a
// cart session and a discarding logger.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)
	ctx = middleware.WithCartSession(ctx, TestSessionID)

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutSession builds a request that skipped the cart
// session middleware.
func CreateTestRequestWithoutSession(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

