package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID)
	return cartView(args.Get(0)), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, req)
	return cartView(args.Get(0)), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, req)
	return cartView(args.Get(0)), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64, variantID *int64) (*models.CartView, error) {
	args := m.Called(ctx, sessionID, productID, variantID)
	return cartView(args.Get(0)), args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID)
	return cartView(args.Get(0)), args.Error(1)
}

func cartView(v any) *models.CartView {
	if v == nil {
		return nil
	}

	return v.(*models.CartView)
}
