package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupUserTest() (*mocks.AuthService, *mocks.ProfileService, *handlers.UserHandler) {
	mockAuth := new(mocks.AuthService)
	mockProfile := new(mocks.ProfileService)

	return mockAuth, mockProfile, handlers.NewUserHandler(mockAuth, mockProfile)
}

func TestLogin(t *testing.T) {
	t.Run("Success - Token issued", func(t *testing.T) {
		mockAuth, _, userHandler := setupUserTest()
		mockAuth.On("Login", mock.Anything, &models.LoginRequest{Principal: "principal-a"}).
			Return(&models.LoginResponse{Success: true, Token: "signed", ExpiresIn: 3600}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader([]byte(`{"principal":"principal-a"}`)), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var login models.LoginResponse
		decodeResponse(t, rr, &login)
		assert.Equal(t, "signed", login.Token)
		mockAuth.AssertExpectations(t)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		mockAuth, _, userHandler := setupUserTest()
		mockAuth.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, RetryAfter: 42, Message: "Too many login attempts. Please try again later."}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader([]byte(`{"principal":"principal-a"}`)), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, resp.Error.Code)
	})

	t.Run("Failure - Principal too short", func(t *testing.T) {
		mockAuth, _, userHandler := setupUserTest()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader([]byte(`{"principal":"ab"}`)), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockAuth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Success - Token revoked", func(t *testing.T) {
		mockAuth, _, userHandler := setupUserTest()
		mockAuth.On("Logout", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool {
			return c.Principal == "principal-a" && c.ID == "test-token-id"
		})).Return(nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/users/logout", nil, "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.Logout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		mockAuth, _, userHandler := setupUserTest()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/logout", nil, nil)
		rr := httptest.NewRecorder()

		userHandler.Logout().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockAuth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success - Get profile", func(t *testing.T) {
		_, mockProfile, userHandler := setupUserTest()
		mockProfile.On("GetProfile", mock.Anything).Return(&models.UserProfile{Name: "Asha"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var profile models.UserProfile
		decodeResponse(t, rr, &profile)
		assert.Equal(t, "Asha", profile.Name)
	})

	t.Run("Failure - Profile not found", func(t *testing.T) {
		_, mockProfile, userHandler := setupUserTest()
		mockProfile.On("GetProfile", mock.Anything).Return(nil, appErrors.NotFoundError("Profile not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - Save profile", func(t *testing.T) {
		_, mockProfile, userHandler := setupUserTest()
		mockProfile.On("SaveProfile", mock.Anything, &models.UserProfile{Name: "Asha Gupta"}).
			Return(&models.UserProfile{Name: "Asha Gupta"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/users/profile", bytes.NewReader([]byte(`{"name":"Asha Gupta"}`)), "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.SaveProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockProfile.AssertExpectations(t)
	})

	t.Run("Failure - Save without name", func(t *testing.T) {
		_, mockProfile, userHandler := setupUserTest()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/users/profile", bytes.NewReader([]byte(`{}`)), "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.SaveProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProfile.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything)
	})

	t.Run("Success - Role", func(t *testing.T) {
		_, mockProfile, userHandler := setupUserTest()
		mockProfile.On("GetRole", mock.Anything).Return(&models.RoleResponse{Role: models.UserRoleUser}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/role", nil, "principal-a", nil)
		rr := httptest.NewRecorder()

		userHandler.Role().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var role models.RoleResponse
		decodeResponse(t, rr, &role)
		assert.Equal(t, models.UserRoleUser, role.Role)
		assert.False(t, role.IsAdmin)
	})
}
