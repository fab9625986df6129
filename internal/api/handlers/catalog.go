package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Description	Retrieves a product snapshot with its variants.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.ProductView		"Successfully retrieved product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		502	{object}	response.ErrorResponse	"Backend unavailable"
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathInt64(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get product", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.NewProductView(*product))
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Lists products sorted by stock (default) or price, or the products of one category, optionally narrowed by a backend filter and a name search.
//	@Tags			Catalog
//	@Produce		json
//	@Param			sort		query		string					false	"stock or price"
//	@Param			category	query		string					false	"Category name"
//	@Param			filter		query		string					false	"Backend-side filter within the category"
//	@Param			q			query		string					false	"Case-insensitive name search"
//	@Success		200			{array}		models.ProductView		"Successfully listed products"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid query"
//	@Failure		502			{object}	response.ErrorResponse	"Backend unavailable"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		q := r.URL.Query()
		query := &models.ProductQuery{
			Sort:     models.ProductSort(strings.ToLower(strings.TrimSpace(q.Get("sort")))),
			Category: strings.TrimSpace(q.Get("category")),
			Filter:   strings.TrimSpace(q.Get("filter")),
			Search:   strings.TrimSpace(q.Get("q")),
		}

		if err := utils.ValidateStruct(h.validator, query); err != nil {
			logger.Warn("Invalid product query", slog.String("error", err.Error()))
			respondValidation(w, err)
			return
		}

		products, err := h.catalogService.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed successfully", slog.Int("count", len(products)))
		response.Success(w, http.StatusOK, products)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Description	Lists categories ordered by product count.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}		models.Category			"Successfully listed categories"
//	@Failure		502	{object}	response.ErrorResponse	"Backend unavailable"
//	@Router			/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}
