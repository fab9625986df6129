package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *appErrors.AppError
		code   string
		status int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"EmptyCart", appErrors.EmptyCartError("empty"), appErrors.ErrCodeEmptyCart, http.StatusBadRequest},
		{"OrderInFlight", appErrors.OrderInFlightError("busy"), appErrors.ErrCodeOrderInFlight, http.StatusConflict},
		{"InsufficientStock", appErrors.InsufficientStockError("stock"), appErrors.ErrCodeInsufficientStock, http.StatusConflict},
		{"BackendUnavailable", appErrors.BackendUnavailableError("down"), appErrors.ErrCodeBackendUnavailable, http.StatusBadGateway},
		{"Unauthorized", appErrors.UnauthorizedError("who"), appErrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"TooManyRequests", appErrors.TooManyRequestsError("slow"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
		})
	}
}

func TestIsAppError(t *testing.T) {
	t.Run("Success - Wrapped AppError", func(t *testing.T) {
		cause := stdErrors.New("connection refused")
		wrapped := fmt.Errorf("placing order: %w", appErrors.BackendUnavailableError("down").WithError(cause))

		appErr, ok := appErrors.IsAppError(wrapped)

		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBackendUnavailable, appErr.Code)
		assert.ErrorIs(t, wrapped, cause)
		assert.True(t, appErrors.HasCode(wrapped, appErrors.ErrCodeBackendUnavailable))
	})

	t.Run("Failure - Plain Error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(stdErrors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
		assert.False(t, appErrors.HasCode(stdErrors.New("plain"), appErrors.ErrCodeInternal))
	})

	t.Run("Detail", func(t *testing.T) {
		err := appErrors.AddValidationError("phone", "is required").WithDetail("phone")

		assert.Equal(t, "Invalid field 'phone': is required", err.Error())
		assert.Equal(t, "phone", err.Detail)
	})
}
