package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/money"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
)

const (
	defaultProductImage  = "default.jpg"
	defaultProductUnit   = "unit"
	defaultProductBrand  = "Generic"
	defaultProductVolume = "1"
)

type AdminService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.CreatedResponse, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.CreatedResponse, error)
}

type adminService struct {
	backend backend.Backend
	cache   cache.Cache
}

func NewAdminService(b backend.Backend, c cache.Cache) AdminService {
	return &adminService{backend: b, cache: c}
}

func (s *adminService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.CreatedResponse, error) {

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	product, err := NewProductFromRequest(req)
	if err != nil {
		return nil, err
	}

	id, err := s.backend.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	invalidateCategories(ctx, s.cache)

	middleware.LoggerFromContext(ctx).Info("Product created", slog.Int64("product_id", id), slog.String("name", product.Name))

	return &models.CreatedResponse{ID: id}, nil
}

func (s *adminService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.CreatedResponse, error) {

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	id, err := s.backend.CreateCategory(ctx, name, strings.TrimSpace(req.Image))
	if err != nil {
		return nil, err
	}

	invalidateCategories(ctx, s.cache)

	middleware.LoggerFromContext(ctx).Info("Category created", slog.Int64("category_id", id), slog.String("name", name))

	return &models.CreatedResponse{ID: id}, nil
}

// NewProductFromRequest converts admin form input into the backend payload:
// rupees become paise, categories are split on commas and blank fields take
// their defaults.
func NewProductFromRequest(req *models.CreateProductRequest) (*models.NewProduct, error) {

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	price, err := money.ParseRupees(req.Price)
	if err != nil {
		return nil, errors.AddValidationError("price", "must be a non-negative rupee amount").WithError(err)
	}

	if req.Stock < 0 {
		return nil, errors.AddValidationError("stock", "must not be negative")
	}

	categories := []string{}
	for _, c := range strings.Split(req.Categories, ",") {
		if c = utils.SanitizeText(c); c != "" {
			categories = append(categories, c)
		}
	}

	return &models.NewProduct{
		Name:         name,
		Description:  utils.SanitizeText(req.Description),
		PriceInPaise: price,
		Stock:        req.Stock,
		Image:        orDefault(strings.TrimSpace(req.Image), defaultProductImage),
		Categories:   categories,
		Unit:         orDefault(utils.SanitizeText(req.Unit), defaultProductUnit),
		Brand:        orDefault(utils.SanitizeText(req.Brand), defaultProductBrand),
		Volume:       orDefault(utils.SanitizeText(req.Volume), defaultProductVolume),
	}, nil
}

func (s *adminService) requireAdmin(ctx context.Context) error {

	isAdmin, err := s.backend.IsCallerAdmin(ctx)
	if err != nil {
		return err
	}

	if !isAdmin {
		middleware.LoggerFromContext(ctx).Warn("Non-admin caller attempted an admin action")
		return errors.ForbiddenError("Admin access required")
	}

	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
