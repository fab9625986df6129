// Package backend is the RPC boundary to the remote service that owns
// products, categories, orders, profiles and roles.
package backend

import (
	"context"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
)

// Backend has one method per remote call. Calls made with a context carrying a
// bearer token are made on behalf of that caller.
type Backend interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProductsByStock(ctx context.Context) ([]models.Product, error)
	ListProductsByPrice(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	FilterProductsByCategory(ctx context.Context, category, filter string) ([]models.Product, error)
	ListCategoriesByProductCount(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, product *models.NewProduct) (int64, error)
	CreateCategory(ctx context.Context, name, image string) (int64, error)
	PlaceOrder(ctx context.Context, items []models.OrderItem) (int64, error)
	GetCallerProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerProfile(ctx context.Context, profile *models.UserProfile) error
	GetCallerRole(ctx context.Context) (models.UserRole, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	Healthy(ctx context.Context) error
}
