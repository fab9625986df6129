package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	authService    service.AuthService
	profileService service.ProfileService
	validator      *validator.Validate
}

func NewUserHandler(authService service.AuthService, profileService service.ProfileService) *UserHandler {
	return &UserHandler{authService: authService, profileService: profileService, validator: validator.New()}
}

// Login godoc
//	@Summary		Start a session
//	@Description	Issues a session token for a principal authenticated by the external identity provider. Attempts are rate limited per principal.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Principal"
//	@Success		200			{object}	models.LoginResponse	"Token issued"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			logger.Warn("Login rate limited", slog.Int("retryAfter", resp.RetryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
			response.Error(w, errors.TooManyRequestsError(resp.Message))
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//	@Summary		End the session
//	@Description	Revokes the caller's token until it expires.
//	@Tags			Users
//	@Produce		json
//	@Success		204	"Token revoked"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/users/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		if err := h.authService.Logout(r.Context(), claims); err != nil {
			logger.Error("Logout failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Profile godoc
//	@Summary		Get the caller's profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.UserProfile		"Profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Profile not found"
//	@Security		BearerAuth
//	@Router			/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		profile, err := h.profileService.GetProfile(r.Context())
		if err != nil {
			logger.Warn("Failed to get profile", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// SaveProfile godoc
//	@Summary		Save the caller's profile
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.UserProfile		true	"Profile"
//	@Success		200		{object}	models.UserProfile		"Saved profile"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/users/profile [put]
func (h *UserHandler) SaveProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		var req models.UserProfile
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.profileService.SaveProfile(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to save profile", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Profile saved")
		response.Success(w, http.StatusOK, profile)
	}
}

// Role godoc
//	@Summary		Get the caller's role
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.RoleResponse		"Role"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/users/role [get]
func (h *UserHandler) Role() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		role, err := h.profileService.GetRole(r.Context())
		if err != nil {
			logger.Error("Failed to get role", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, role)
	}
}
