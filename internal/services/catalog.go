package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
)

const categoriesCacheID = "by_product_count"

type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, query *models.ProductQuery) ([]models.ProductView, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type catalogService struct {
	backend backend.Backend
	cache   cache.Cache
	cfg     *config.CacheConfig
}

func NewCatalogService(b backend.Backend, c cache.Cache, cfg *config.CacheConfig) CatalogService {
	return &catalogService{backend: b, cache: c, cfg: cfg}
}

// GetProduct serves product snapshots cache-aside. Cache failures degrade to a
// backend call.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.Int64("product_id", id), slog.String("error", err.Error()))
	}

	metrics.RecordProductCache(found)

	if found {
		return &cached, nil
	}

	product, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, key, product, s.cfg.ProductTTL); err != nil {
		logger.Warn("Product cache write failed", slog.Int64("product_id", id), slog.String("error", err.Error()))
	}

	return product, nil
}

// ListProducts picks the backend listing that matches the query, then applies
// the case-insensitive name search locally.
func (s *catalogService) ListProducts(ctx context.Context, query *models.ProductQuery) ([]models.ProductView, error) {

	var (
		products []models.Product
		err      error
	)

	switch {
	case query.Category != "" && query.Filter != "":
		products, err = s.backend.FilterProductsByCategory(ctx, query.Category, query.Filter)
	case query.Category != "":
		products, err = s.backend.ListProductsByCategory(ctx, query.Category)
	case query.Sort == models.ProductSortPrice:
		products, err = s.backend.ListProductsByPrice(ctx)
	default:
		products, err = s.backend.ListProductsByStock(ctx)
	}

	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		views = append(views, models.NewProductView(p))
	}

	return views, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CategoryKeyPrefix, categoriesCacheID)

	var cached []models.Category

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Category cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return cached, nil
	}

	categories, err := s.backend.ListCategoriesByProductCount(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, categories, 0); err != nil {
		logger.Warn("Category cache write failed", slog.String("error", err.Error()))
	}

	return categories, nil
}

// invalidateCategories drops the cached category listing after an admin write.
func invalidateCategories(ctx context.Context, c cache.Cache) {
	if err := c.Delete(ctx, cache.Key(cache.CategoryKeyPrefix, categoriesCacheID)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Category cache invalidation failed", slog.String("error", err.Error()))
	}
}
