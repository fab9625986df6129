package handlers

import (
	stdErrors "errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/identity"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// requireSession writes an error and returns false when the cart session
// middleware did not run.
func requireSession(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	sessionID, ok := middleware.CartSessionFromContext(r.Context())
	if !ok {
		logger.Error("Cart session missing from request context")
		response.Error(w, errors.InternalError("Cart session unavailable"))
		return "", false
	}

	return sessionID, true
}

func requireClaims(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Claims, bool) {
	claims, ok := identity.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized request: missing claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}

func respondValidation(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if stdErrors.As(err, &validationErrs) {
		response.ValidationError(w, validationErrs)
		return
	}

	response.Error(w, errors.ValidationError("Invalid input data"))
}
