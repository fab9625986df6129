package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type AdminService struct {
	mock.Mock
}

func (m *AdminService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.CreatedResponse, error) {
	args := m.Called(ctx, req)
	return created(args.Get(0)), args.Error(1)
}

func (m *AdminService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.CreatedResponse, error) {
	args := m.Called(ctx, req)
	return created(args.Get(0)), args.Error(1)
}

func created(v any) *models.CreatedResponse {
	if v == nil {
		return nil
	}

	return v.(*models.CreatedResponse)
}
