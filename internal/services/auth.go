package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	models "github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/kirana-storefront/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *models.Claims) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authService struct {
	rateLimiter repository.RateLimitRepository
	cache       cache.Cache
	jwtKey      []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthService(rateLimiter repository.RateLimitRepository, c cache.Cache, jwtKey []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		rateLimiter: rateLimiter,
		cache:       c,
		jwtKey:      jwtKey,
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

// Login issues a session token for an already-authenticated principal. The
// identity provider is external; attempts are still rate limited per principal.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)
	principal := strings.TrimSpace(req.Principal)

	if principal == "" {
		return nil, errors.AddValidationError("principal", "is required")
	}

	// check rate limit
	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, principal)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	now := s.now()

	claims := &models.Claims{
		Principal: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	if err := s.rateLimiter.ResetLoginRateLimit(ctx, principal); err != nil {
		logger.Warn("Failed to reset login attempts", slog.String("error", err.Error()))
	}

	logger.Info("Session token issued", slog.String("principal", principal))

	return &models.LoginResponse{
		Success:        true,
		Token:          tokenString,
		ExpiresIn:      int(s.tokenTTL.Seconds()),
		RemainingTries: remaining,
	}, nil

}

// Logout revokes the token id until the token would have expired anyway.
func (s *authService) Logout(ctx context.Context, claims *models.Claims) error {

	if claims == nil || claims.ID == "" {
		return errors.BadRequestError("Token can not be revoked")
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}

	if ttl <= 0 {
		return nil
	}

	key := cache.Key(cache.RevokedTokenKeyPrefix, claims.ID)
	if err := s.cache.Set(ctx, key, claims.Principal, ttl); err != nil {
		return errors.ThirdPartyError("Failed to revoke token").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Session token revoked", slog.String("principal", claims.Principal))

	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {

	if tokenID == "" {
		return false, nil
	}

	return s.cache.Exists(ctx, cache.Key(cache.RevokedTokenKeyPrefix, tokenID))
}
