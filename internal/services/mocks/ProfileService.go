package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProfileService struct {
	mock.Mock
}

func (m *ProfileService) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	args := m.Called(ctx)
	return profile(args.Get(0)), args.Error(1)
}

func (m *ProfileService) SaveProfile(ctx context.Context, req *models.UserProfile) (*models.UserProfile, error) {
	args := m.Called(ctx, req)
	return profile(args.Get(0)), args.Error(1)
}

func (m *ProfileService) GetRole(ctx context.Context) (*models.RoleResponse, error) {
	args := m.Called(ctx)

	var role *models.RoleResponse
	if v := args.Get(0); v != nil {
		role = v.(*models.RoleResponse)
	}

	return role, args.Error(1)
}

func profile(v any) *models.UserProfile {
	if v == nil {
		return nil
	}

	return v.(*models.UserProfile)
}
