package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, delivery *models.DeliveryDetails) (*models.OrderConfirmation, error) {
	args := m.Called(ctx, sessionID, delivery)

	var confirmation *models.OrderConfirmation
	if v := args.Get(0); v != nil {
		confirmation = v.(*models.OrderConfirmation)
	}

	return confirmation, args.Error(1)
}
