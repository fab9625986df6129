package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend/mocks"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/money"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validDelivery() *models.DeliveryDetails {
	return &models.DeliveryDetails{
		Name:    "Asha Gupta",
		Phone:   "9876543210",
		Address: "12 MG Road, Pune",
		Notes:   "Ring twice",
	}
}

func setupCheckout(t *testing.T) (*mocks.Backend, *cart.Registry, service.CheckoutService) {
	t.Helper()

	mockBackend := new(mocks.Backend)
	registry := newRegistry()

	return mockBackend, registry, service.NewCheckoutService(registry, mockBackend)
}

func fillReferenceCart(t *testing.T, registry *cart.Registry, sessionID string) *cart.Store {
	t.Helper()

	store, err := registry.Get(context.Background(), sessionID)
	require.NoError(t, err)

	store.AddItem(context.Background(), *rice(), 2, nil)
	store.AddItem(context.Background(), *dal(), 1, nil)

	return store
}

func TestBuildOrderRequest(t *testing.T) {
	t.Run("Success - Preserves order and variants", func(t *testing.T) {
		items := []models.LineItem{
			{Product: *dal(), Quantity: 3},
			{Product: *rice(), Quantity: 1, VariantID: int64Ptr(0)},
			{Product: *rice(), Quantity: 2, VariantID: int64Ptr(7)},
		}

		order := service.BuildOrderRequest(items)

		require.Len(t, order, 3)
		assert.Equal(t, models.OrderItem{ID: 2, Quantity: 3}, order[0])
		assert.Equal(t, int64(1), order[1].ID)
		require.NotNil(t, order[1].Variant, "variant id zero must be sent")
		assert.Equal(t, int64(0), *order[1].Variant)
		assert.Equal(t, int64(7), *order[2].Variant)
	})

	t.Run("Success - Does not alias line item variants", func(t *testing.T) {
		items := []models.LineItem{{Product: *rice(), Quantity: 1, VariantID: int64Ptr(7)}}

		order := service.BuildOrderRequest(items)
		*order[0].Variant = 99

		assert.Equal(t, int64(7), *items[0].VariantID)
	})

	t.Run("Success - Empty input", func(t *testing.T) {
		assert.Empty(t, service.BuildOrderRequest(nil))
	})
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Places order and clears cart", func(t *testing.T) {
		// Arrange
		mockBackend, registry, checkout := setupCheckout(t)
		store := fillReferenceCart(t, registry, "s1")
		expected := []models.OrderItem{{ID: 1, Quantity: 2}, {ID: 2, Quantity: 1}}

		mockBackend.On("PlaceOrder", ctx, expected).Return(int64(981), nil).Once()

		// Act
		confirmation, err := checkout.PlaceOrder(ctx, "s1", validDelivery())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(981), confirmation.OrderID)
		assert.Equal(t, 3, confirmation.ItemCount)
		assert.Equal(t, money.Paise(1300), confirmation.TotalPrice)
		assert.Equal(t, "₹13.00", confirmation.TotalLabel)
		assert.Equal(t, 0, store.Len())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Insufficient stock keeps cart", func(t *testing.T) {
		mockBackend, registry, checkout := setupCheckout(t)
		store := fillReferenceCart(t, registry, "s1")

		mockBackend.On("PlaceOrder", ctx, mock.Anything).Return(int64(0), appErrors.InsufficientStockError("Insufficient stock")).Once()

		confirmation, err := checkout.PlaceOrder(ctx, "s1", validDelivery())

		assert.Nil(t, confirmation)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		assert.Contains(t, appErr.Message, "no longer available")
		assert.Equal(t, 3, store.TotalItems())
	})

	t.Run("Failure - Backend down keeps cart", func(t *testing.T) {
		mockBackend, registry, checkout := setupCheckout(t)
		store := fillReferenceCart(t, registry, "s1")

		mockBackend.On("PlaceOrder", ctx, mock.Anything).Return(int64(0), appErrors.BackendUnavailableError("Backend is unavailable")).Once()

		_, err := checkout.PlaceOrder(ctx, "s1", validDelivery())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBackendUnavailable, appErr.Code)
		assert.Equal(t, "Failed to place order. Please try again.", appErr.Message)
		assert.Equal(t, money.Paise(1300), store.TotalPrice())
	})

	t.Run("Failure - Empty cart never calls backend", func(t *testing.T) {
		mockBackend, _, checkout := setupCheckout(t)

		_, err := checkout.PlaceOrder(ctx, "empty", validDelivery())

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeEmptyCart))
		mockBackend.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Blank delivery fields never call backend", func(t *testing.T) {
		for _, mutate := range []func(d *models.DeliveryDetails){
			func(d *models.DeliveryDetails) { d.Name = "   " },
			func(d *models.DeliveryDetails) { d.Phone = "" },
			func(d *models.DeliveryDetails) { d.Address = "<b></b>" },
		} {
			mockBackend, registry, checkout := setupCheckout(t)
			store := fillReferenceCart(t, registry, "s1")
			delivery := validDelivery()
			mutate(delivery)

			_, err := checkout.PlaceOrder(ctx, "s1", delivery)

			assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
			assert.Equal(t, 3, store.TotalItems())
			mockBackend.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
		}
	})

	t.Run("Failure - Concurrent submission is rejected", func(t *testing.T) {
		mockBackend, registry, checkout := setupCheckout(t)
		fillReferenceCart(t, registry, "s1")

		started := make(chan struct{})
		release := make(chan struct{})

		mockBackend.On("PlaceOrder", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				close(started)
				<-release
			}).
			Return(int64(7), nil).Once()

		var (
			wg    sync.WaitGroup
			first *models.OrderConfirmation
			err1  error
		)

		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err1 = checkout.PlaceOrder(ctx, "s1", validDelivery())
		}()

		<-started
		_, err2 := checkout.PlaceOrder(ctx, "s1", validDelivery())
		close(release)
		wg.Wait()

		assert.True(t, appErrors.HasCode(err2, appErrors.ErrCodeOrderInFlight))
		require.NoError(t, err1)
		assert.Equal(t, int64(7), first.OrderID)
		mockBackend.AssertNumberOfCalls(t, "PlaceOrder", 1)
	})

	t.Run("Success - Guard is released after failure", func(t *testing.T) {
		mockBackend, registry, checkout := setupCheckout(t)
		fillReferenceCart(t, registry, "s1")

		mockBackend.On("PlaceOrder", ctx, mock.Anything).Return(int64(0), appErrors.BackendUnavailableError("down")).Once()
		mockBackend.On("PlaceOrder", ctx, mock.Anything).Return(int64(12), nil).Once()

		_, err := checkout.PlaceOrder(ctx, "s1", validDelivery())
		require.Error(t, err)

		confirmation, err := checkout.PlaceOrder(ctx, "s1", validDelivery())
		require.NoError(t, err)
		assert.Equal(t, int64(12), confirmation.OrderID)
	})
}
