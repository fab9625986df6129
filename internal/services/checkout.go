package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
)

const (
	msgOrderPlaced       = "Order placed successfully!"
	msgInsufficientStock = "Some items are no longer available in the requested quantity. Please review your cart."
	msgOrderFailed       = "Failed to place order. Please try again."
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionID string, delivery *models.DeliveryDetails) (*models.OrderConfirmation, error)
}

type checkoutService struct {
	carts    *cart.Registry
	backend  backend.Backend
	inFlight sync.Map
}

func NewCheckoutService(carts *cart.Registry, b backend.Backend) CheckoutService {
	return &checkoutService{carts: carts, backend: b}
}

// BuildOrderRequest maps line items to the wire order, preserving cart order.
// Only ids and quantities are sent; prices are resolved by the backend.
func BuildOrderRequest(items []models.LineItem) []models.OrderItem {
	order := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		var variant *int64
		if item.VariantID != nil {
			v := *item.VariantID
			variant = &v
		}

		order = append(order, models.OrderItem{
			ID:       item.Product.ID,
			Quantity: item.Quantity,
			Variant:  variant,
		})
	}

	return order
}

// PlaceOrder submits the session cart once. Preconditions are checked before any
// remote call; the cart is cleared only after the backend accepted the order.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string, delivery *models.DeliveryDetails) (*models.OrderConfirmation, error) {

	logger := middleware.LoggerFromContext(ctx)

	if err := normalizeDelivery(delivery); err != nil {
		metrics.RecordOrder(metrics.OrderOutcomeRejected)
		return nil, err
	}

	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if _, busy := s.inFlight.LoadOrStore(sessionID, struct{}{}); busy {
		metrics.RecordOrder(metrics.OrderOutcomeInFlight)
		return nil, errors.OrderInFlightError("An order for this cart is already being placed")
	}
	defer s.inFlight.Delete(sessionID)

	items := store.Items()
	if len(items) == 0 {
		metrics.RecordOrder(metrics.OrderOutcomeRejected)
		return nil, errors.EmptyCartError("Your cart is empty")
	}

	view := NewCartView(items)
	request := BuildOrderRequest(items)

	orderID, err := s.backend.PlaceOrder(ctx, request)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeInsufficientStock) {
			metrics.RecordOrder(metrics.OrderOutcomeInsufficientStock)
			logger.Warn("Order rejected for stock", slog.String("error", err.Error()))
			return nil, errors.InsufficientStockError(msgInsufficientStock).WithError(err)
		}

		if errors.HasCode(err, errors.ErrCodeUnauthorized) {
			metrics.RecordOrder(metrics.OrderOutcomeFailed)
			return nil, err
		}

		metrics.RecordOrder(metrics.OrderOutcomeFailed)
		logger.Error("Order placement failed", slog.String("error", err.Error()))
		return nil, errors.BackendUnavailableError(msgOrderFailed).WithError(err)
	}

	store.Clear(ctx)
	metrics.RecordOrder(metrics.OrderOutcomePlaced)

	logger.Info("Order placed",
		slog.Int64("order_id", orderID),
		slog.Int("item_count", view.TotalItems),
		slog.Int64("total_in_paise", int64(view.TotalPrice)))

	return &models.OrderConfirmation{
		OrderID:    orderID,
		ItemCount:  view.TotalItems,
		TotalPrice: view.TotalPrice,
		TotalLabel: view.TotalLabel,
		Message:    msgOrderPlaced,
	}, nil
}

// normalizeDelivery sanitizes the free-text fields in place and rejects blank
// required fields.
func normalizeDelivery(d *models.DeliveryDetails) error {
	if d == nil {
		return errors.ValidationError("Please fill in all required fields")
	}

	d.Name = utils.SanitizeText(d.Name)
	d.Phone = utils.SanitizeText(d.Phone)
	d.Address = utils.SanitizeText(d.Address)
	d.Notes = utils.SanitizeText(d.Notes)

	switch {
	case d.Name == "":
		return errors.AddValidationError("name", "is required")
	case d.Phone == "":
		return errors.AddValidationError("phone", "is required")
	case d.Address == "":
		return errors.AddValidationError("address", "is required")
	}

	return nil
}
