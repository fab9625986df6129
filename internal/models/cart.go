package models

import "github.com/aaravmahajanofficial/kirana-storefront/internal/money"

// LineItem is one (product, variant-or-none, quantity) entry of a cart. The
// product is the snapshot captured when the item was first added.
type LineItem struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	VariantID *int64  `json:"variant_id,omitempty"`
}

// Matches reports whether the line item has the given dedup key. A nil variant
// only matches line items without a variant.
func (li *LineItem) Matches(productID int64, variantID *int64) bool {
	if li.Product.ID != productID {
		return false
	}

	if li.VariantID == nil || variantID == nil {
		return li.VariantID == nil && variantID == nil
	}

	return *li.VariantID == *variantID
}

// UnitPrice resolves the effective unit price. matched is false when a variant
// id is set but the snapshot has no such variant and the base price was used.
func (li *LineItem) UnitPrice() (price money.Paise, matched bool) {
	if li.VariantID == nil {
		return li.Product.PriceInPaise, true
	}

	if v, ok := li.Product.FindVariant(*li.VariantID); ok {
		return v.PriceInPaise, true
	}

	return li.Product.PriceInPaise, false
}

type AddItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

type UpdateQuantityRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"max=999"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

type CartLineView struct {
	ProductID      int64       `json:"product_id"`
	Name           string      `json:"name"`
	Image          string      `json:"image,omitempty"`
	VariantID      *int64      `json:"variant_id,omitempty"`
	VariantName    string      `json:"variant_name,omitempty"`
	Quantity       int         `json:"quantity"`
	UnitPrice      money.Paise `json:"unit_price_in_paise"`
	LineTotal      money.Paise `json:"line_total_in_paise"`
	LineTotalLabel string      `json:"line_total"`
}

type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice money.Paise    `json:"total_price_in_paise"`
	TotalLabel string         `json:"total_price"`
}
