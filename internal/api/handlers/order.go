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

type OrderHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewOrderHandler(checkoutService service.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, validator: validator.New()}
}

// PlaceOrder godoc
//	@Summary		Place an order from the session cart
//	@Description	Submits the cart as an order to the backend. The cart is emptied only when the backend accepts the order. Requires authentication.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			delivery	body		models.DeliveryDetails		true	"Delivery details"
//	@Success		201			{object}	models.OrderConfirmation	"Order placed"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error or empty cart"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		409			{object}	response.ErrorResponse		"Insufficient stock or order already in flight"
//	@Failure		502			{object}	response.ErrorResponse		"Backend unavailable"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}
		logger = logger.With(slog.String("principal", claims.Principal))

		sessionID, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.DeliveryDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid delivery details")
			return
		}

		confirmation, err := h.checkoutService.PlaceOrder(r.Context(), sessionID, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully", slog.Int64("orderId", confirmation.OrderID))
		response.Success(w, http.StatusCreated, confirmation)
	}
}
