package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/money"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartView, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64, variantID *int64) (*models.CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*models.CartView, error)
}

type cartService struct {
	carts   *cart.Registry
	catalog CatalogService
}

func NewCartService(carts *cart.Registry, catalog CatalogService) CartService {
	return &cartService{carts: carts, catalog: catalog}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return BuildCartView(store), nil
}

// AddItem snapshots the product from the catalog and adds it to the session cart.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartView, error) {

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.InStock {
		return nil, errors.ValidationError("Product is out of stock")
	}

	if req.VariantID != nil {
		if _, ok := product.FindVariant(*req.VariantID); !ok {
			return nil, errors.AddValidationError("variant_id", "unknown variant for this product")
		}
	}

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	store.AddItem(ctx, *product, quantity, req.VariantID)
	metrics.RecordCartMutation(metrics.CartOpAdd)

	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.Int64("product_id", product.ID),
		slog.Int("quantity", quantity))

	return BuildCartView(store), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if store.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.VariantID) {
		metrics.RecordCartMutation(metrics.CartOpUpdate)
	}

	return BuildCartView(store), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64, variantID *int64) (*models.CartView, error) {

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if store.RemoveItem(ctx, productID, variantID) {
		metrics.RecordCartMutation(metrics.CartOpRemove)
	}

	return BuildCartView(store), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*models.CartView, error) {

	store, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	store.Clear(ctx)
	metrics.RecordCartMutation(metrics.CartOpClear)

	return BuildCartView(store), nil
}

func (s *cartService) store(ctx context.Context, sessionID string) (*cart.Store, error) {

	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to load cart", slog.String("error", err.Error()))
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	return store, nil
}

// BuildCartView renders one consistent copy of the store's line items with
// effective prices and totals.
func BuildCartView(store *cart.Store) *models.CartView {
	return NewCartView(store.Items())
}

func NewCartView(items []models.LineItem) *models.CartView {

	lines := make([]models.CartLineView, 0, len(items))

	var (
		total      money.Paise
		totalItems int
	)

	for i := range items {
		item := &items[i]
		unit, _ := item.UnitPrice()

		line := models.CartLineView{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Image:     item.Product.Image,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: unit * money.Paise(item.Quantity),
		}

		if item.VariantID != nil {
			if v, ok := item.Product.FindVariant(*item.VariantID); ok {
				line.VariantName = v.Name
			}
		}

		line.LineTotalLabel = money.Format(line.LineTotal)
		lines = append(lines, line)

		total += line.LineTotal
		totalItems += line.Quantity
	}

	return &models.CartView{
		Items:      lines,
		TotalItems: totalItems,
		TotalPrice: total,
		TotalLabel: money.Format(total),
	}
}
