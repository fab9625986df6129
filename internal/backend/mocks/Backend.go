package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// Backend is a testify mock of backend.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, args.Error(1)
}

func (m *Backend) ListProductsByStock(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return products(args.Get(0)), args.Error(1)
}

func (m *Backend) ListProductsByPrice(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return products(args.Get(0)), args.Error(1)
}

func (m *Backend) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(ctx, category)
	return products(args.Get(0)), args.Error(1)
}

func (m *Backend) FilterProductsByCategory(ctx context.Context, category, filter string) ([]models.Product, error) {
	args := m.Called(ctx, category, filter)
	return products(args.Get(0)), args.Error(1)
}

func (m *Backend) ListCategoriesByProductCount(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	var categories []models.Category
	if v := args.Get(0); v != nil {
		categories = v.([]models.Category)
	}

	return categories, args.Error(1)
}

func (m *Backend) CreateProduct(ctx context.Context, product *models.NewProduct) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Backend) CreateCategory(ctx context.Context, name, image string) (int64, error) {
	args := m.Called(ctx, name, image)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Backend) PlaceOrder(ctx context.Context, items []models.OrderItem) (int64, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Backend) GetCallerProfile(ctx context.Context) (*models.UserProfile, error) {
	args := m.Called(ctx)

	var profile *models.UserProfile
	if v := args.Get(0); v != nil {
		profile = v.(*models.UserProfile)
	}

	return profile, args.Error(1)
}

func (m *Backend) SaveCallerProfile(ctx context.Context, profile *models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *Backend) GetCallerRole(ctx context.Context) (models.UserRole, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.UserRole), args.Error(1)
}

func (m *Backend) IsCallerAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *Backend) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func products(v any) []models.Product {
	if v == nil {
		return nil
	}

	return v.([]models.Product)
}
