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

type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a product (Admin)
//	@Description	Creates a product in the backend catalog. Price is given in rupees and categories comma separated.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.CreatedResponse		"Product created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Admin access required"
//	@Failure		502		{object}	response.ErrorResponse		"Backend unavailable"
//	@Security		BearerAuth
//	@Router			/admin/products [post]
func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.adminService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}

// CreateCategory godoc
//	@Summary		Create a category (Admin)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			category	body		models.CreateCategoryRequest	true	"Category details"
//	@Success		201			{object}	models.CreatedResponse			"Category created"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse			"Admin access required"
//	@Security		BearerAuth
//	@Router			/admin/categories [post]
func (h *AdminHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.adminService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}
