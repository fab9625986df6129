package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the session cart
//	@Description	Returns the cart of the caller's cart session with line totals and the cart total.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Successfully retrieved cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds a product, optionally a specific variant, to the cart. Adding an existing line increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product, quantity and optional variant"
//	@Success		200		{object}	models.CartView			"Item added"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error, out of stock or unknown variant"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		502		{object}	response.ErrorResponse	"Backend unavailable"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("productId", req.ProductID), slog.Int("totalItems", cart.TotalItems))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Description	Sets the quantity of the line matching product and variant. A quantity of zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Product, new quantity and optional variant"
//	@Success		200		{object}	models.CartView					"Quantity updated"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Router			/cart/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sessionID, &req)
		if err != nil {
			logger.Error("Failed to update cart quantity", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Description	Removes only the line matching the product and variant. Omit variant to remove the line without a variant.
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		int						true	"Product ID"
//	@Param			variant		query		int						false	"Variant ID (0 is a valid variant)"
//	@Success		200			{object}	models.CartView			"Line removed"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product or variant ID"
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		productID, err := utils.PathInt64(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		variantID, err := utils.OptionalQueryInt64(r, "variant")
		if err != nil {
			logger.Warn("Invalid variant id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID, productID, variantID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Cart cleared"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}
