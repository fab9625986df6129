package models

import "github.com/aaravmahajanofficial/kirana-storefront/internal/money"

// OrderItem is the wire shape placeOrder takes: ids and quantity only, no
// product snapshot.
type OrderItem struct {
	ID       int64  `json:"id"`
	Quantity int    `json:"quantity"`
	Variant  *int64 `json:"variant,omitempty"`
}

type PlaceOrderRequest struct {
	Items []OrderItem `json:"items"`
}

type PlaceOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// DeliveryDetails is collected at checkout and validated locally before any
// remote call. Name, phone and address must be non-blank.
type DeliveryDetails struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,min=6,max=20"`
	Address string `json:"address" validate:"required,max=500"`
	Notes   string `json:"notes" validate:"omitempty,max=500"`
}

type OrderConfirmation struct {
	OrderID    int64       `json:"order_id"`
	ItemCount  int         `json:"item_count"`
	TotalPrice money.Paise `json:"total_price_in_paise"`
	TotalLabel string      `json:"total_price"`
	Message    string      `json:"message"`
}
