package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, query *models.ProductQuery) ([]models.ProductView, error) {
	args := m.Called(ctx, query)

	var views []models.ProductView
	if v := args.Get(0); v != nil {
		views = v.([]models.ProductView)
	}

	return views, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	var categories []models.Category
	if v := args.Get(0); v != nil {
		categories = v.([]models.Category)
	}

	return categories, args.Error(1)
}
