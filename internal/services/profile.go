package service

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
)

type ProfileService interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, req *models.UserProfile) (*models.UserProfile, error)
	GetRole(ctx context.Context) (*models.RoleResponse, error)
}

type profileService struct {
	backend backend.Backend
}

func NewProfileService(b backend.Backend) ProfileService {
	return &profileService{backend: b}
}

func (s *profileService) GetProfile(ctx context.Context) (*models.UserProfile, error) {

	profile, err := s.backend.GetCallerProfile(ctx)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return nil, errors.NotFoundError("Profile not found")
	}

	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, req *models.UserProfile) (*models.UserProfile, error) {

	profile := &models.UserProfile{Name: utils.SanitizeText(req.Name)}
	if profile.Name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	if err := s.backend.SaveCallerProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *profileService) GetRole(ctx context.Context) (*models.RoleResponse, error) {

	role, err := s.backend.GetCallerRole(ctx)
	if err != nil {
		return nil, err
	}

	return &models.RoleResponse{Role: role, IsAdmin: role == models.UserRoleAdmin}, nil
}
