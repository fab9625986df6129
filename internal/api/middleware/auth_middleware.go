package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/identity"
	models "github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	jwtKey      []byte
	revocations RevocationChecker
}

func NewAuthMiddleware(jwtKey []byte, revocations RevocationChecker) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey, revocations: revocations}

}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		tokenString := tokenParts[1]

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return m.jwtKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if !token.Valid || claims.Principal == "" {
			logger.Warn("Invalid token")
			response.Error(w, errors.UnauthorizedError("Invalid token"))
			return
		}

		if m.revocations != nil {
			revoked, err := m.revocations.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation", slog.String("error", err.Error()))
				response.Error(w, errors.InternalError("Failed to verify token").WithError(err))
				return
			}

			if revoked {
				logger.Warn("Revoked token used", slog.String("principal", claims.Principal))
				response.Error(w, errors.UnauthorizedError("Token has been revoked"))
				return
			}
		}

		ctx := identity.WithClaims(r.Context(), claims)
		ctx = identity.WithToken(ctx, tokenString)

		requestScopedLogger := logger.With(slog.String("principal", claims.Principal))
		ctx = WithLogger(ctx, requestScopedLogger)

		requestScopedLogger.Debug("Caller authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
