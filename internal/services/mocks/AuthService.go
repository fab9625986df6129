package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	var resp *models.LoginResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.LoginResponse)
	}

	return resp, args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, claims *models.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *AuthService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
