package models

import (
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/money"
)

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
	Image        string `json:"image"`
}

// Variant is a sub-SKU of a product. VariantID is unique only within its product.
type Variant struct {
	VariantID    int64       `json:"variant_id"`
	Name         string      `json:"name"`
	PriceInPaise money.Paise `json:"price_in_paise"`
	Stock        int64       `json:"stock"`
}

// Product is a read-only snapshot of the backend's catalog entry.
type Product struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	PriceInPaise     money.Paise  `json:"price_in_paise"`
	Stock            int64        `json:"stock"`
	InStock          bool         `json:"in_stock"`
	HasDealPrice     bool         `json:"has_deal_price"`
	DealPriceInPaise *money.Paise `json:"deal_price_in_paise,omitempty"`
	Variants         []Variant    `json:"variants"`
	Categories       []string     `json:"categories"`
	Tags             []string     `json:"tags,omitempty"`
	Unit             string       `json:"unit,omitempty"`
	Brand            string       `json:"brand,omitempty"`
	Volume           string       `json:"volume,omitempty"`
	Image            string       `json:"image,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// FindVariant looks a variant up by its product-scoped identifier.
func (p *Product) FindVariant(variantID int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.VariantID == variantID {
			return v, true
		}
	}

	return Variant{}, false
}

// DisplayPrice is the price shown on product cards: the deal price when one is
// flagged and present, the base price otherwise. Cart pricing does not use it.
func (p *Product) DisplayPrice() money.Paise {
	if p.HasDealPrice && p.DealPriceInPaise != nil && *p.DealPriceInPaise > 0 {
		return *p.DealPriceInPaise
	}

	return p.PriceInPaise
}

type ProductSort string

const (
	ProductSortStock ProductSort = "stock"
	ProductSortPrice ProductSort = "price"
)

type ProductQuery struct {
	Sort     ProductSort `validate:"omitempty,oneof=stock price"`
	Category string      `validate:"omitempty,max=100"`
	Filter   string      `validate:"omitempty,max=100"`
	Search   string      `validate:"omitempty,max=100"`
}

// ProductView is a catalog entry decorated with display strings.
type ProductView struct {
	Product
	DisplayPrice     money.Paise `json:"display_price_in_paise"`
	DisplayFormatted string      `json:"display_price"`
	BaseFormatted    string      `json:"base_price"`
}

func NewProductView(p Product) ProductView {
	return ProductView{
		Product:          p,
		DisplayPrice:     p.DisplayPrice(),
		DisplayFormatted: money.Format(p.DisplayPrice()),
		BaseFormatted:    money.Format(p.PriceInPaise),
	}
}

// Admin input: price arrives in rupees as typed, categories comma separated.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Price       string `json:"price" validate:"required,numeric"`
	Stock       int64  `json:"stock" validate:"gte=0"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	Categories  string `json:"categories" validate:"omitempty,max=500"`
	Unit        string `json:"unit" validate:"omitempty,max=50"`
	Brand       string `json:"brand" validate:"omitempty,max=100"`
	Volume      string `json:"volume" validate:"omitempty,max=50"`
}

// NewProduct is the payload the backend's createProduct call takes.
type NewProduct struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	PriceInPaise money.Paise `json:"price_in_paise"`
	Stock        int64       `json:"stock"`
	Image        string      `json:"image"`
	Categories   []string    `json:"categories"`
	Unit         string      `json:"unit"`
	Brand        string      `json:"brand"`
	Volume       string      `json:"volume"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Image string `json:"image" validate:"omitempty,max=500"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}
