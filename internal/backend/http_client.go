package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/errors"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/identity"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 20

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		},
	}
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *HTTPClient) ListProductsByStock(ctx context.Context) ([]models.Product, error) {
	return c.listProducts(ctx, url.Values{"sort": {string(models.ProductSortStock)}})
}

func (c *HTTPClient) ListProductsByPrice(ctx context.Context) ([]models.Product, error) {
	return c.listProducts(ctx, url.Values{"sort": {string(models.ProductSortPrice)}})
}

func (c *HTTPClient) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return c.listProducts(ctx, url.Values{"category": {category}})
}

func (c *HTTPClient) FilterProductsByCategory(ctx context.Context, category, filter string) ([]models.Product, error) {
	return c.listProducts(ctx, url.Values{"category": {category}, "filter": {filter}})
}

func (c *HTTPClient) ListCategoriesByProductCount(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if err := c.do(ctx, http.MethodGet, "/api/categories?sort=product_count", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, product *models.NewProduct) (int64, error) {
	var created models.CreatedResponse

	if err := c.do(ctx, http.MethodPost, "/api/products", product, &created); err != nil {
		return 0, err
	}

	return created.ID, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name, image string) (int64, error) {
	var created models.CreatedResponse

	body := models.CreateCategoryRequest{Name: name, Image: image}
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &created); err != nil {
		return 0, err
	}

	return created.ID, nil
}

func (c *HTTPClient) PlaceOrder(ctx context.Context, items []models.OrderItem) (int64, error) {
	var placed models.PlaceOrderResponse

	if err := c.do(ctx, http.MethodPost, "/api/orders", models.PlaceOrderRequest{Items: items}, &placed); err != nil {
		return 0, err
	}

	return placed.OrderID, nil
}

// GetCallerProfile returns nil without error when the caller has no profile yet.
func (c *HTTPClient) GetCallerProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile *models.UserProfile

	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (c *HTTPClient) SaveCallerProfile(ctx context.Context, profile *models.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/api/profile", profile, nil)
}

func (c *HTTPClient) GetCallerRole(ctx context.Context) (models.UserRole, error) {
	var role models.RoleResponse

	if err := c.do(ctx, http.MethodGet, "/api/role", nil, &role); err != nil {
		return "", err
	}

	return role.Role, nil
}

func (c *HTTPClient) IsCallerAdmin(ctx context.Context) (bool, error) {
	var role models.RoleResponse

	if err := c.do(ctx, http.MethodGet, "/api/role/admin", nil, &role); err != nil {
		return false, err
	}

	return role.IsAdmin, nil
}

// Healthy reports whether the backend answers its health endpoint with a 2xx.
func (c *HTTPClient) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend health returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *HTTPClient) listProducts(ctx context.Context, query url.Values) ([]models.Product, error) {
	var products []models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products?"+query.Encode(), nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {

	logger := middleware.LoggerFromContext(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode backend request").WithError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.InternalError("Failed to build backend request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := identity.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Backend call failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return errors.BackendUnavailableError("Backend is unavailable").WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.BackendUnavailableError("Failed to read backend response").WithError(err)
	}

	logger.Debug("Backend call completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return errors.BackendUnavailableError("Malformed backend response").WithError(err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return mapError(resp.StatusCode, env.Error)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.BackendUnavailableError("Malformed backend response").WithError(err)
	}

	return nil
}

func mapError(status int, remote *envelopeError) error {
	code, message := "", ""
	if remote != nil {
		code, message = remote.Code, remote.Message
	}

	cause := fmt.Errorf("backend returned status %d code %q: %s", status, code, message)

	switch {
	case code == errors.ErrCodeInsufficientStock, status == http.StatusConflict:
		return errors.InsufficientStockError("Insufficient stock").WithDetail(message).WithError(cause)
	case status == http.StatusBadRequest:
		return errors.BadRequestError(orDefault(message, "Backend rejected the request")).WithError(cause)
	case status == http.StatusUnauthorized:
		return errors.UnauthorizedError("Authentication required").WithError(cause)
	case status == http.StatusForbidden:
		return errors.ForbiddenError("Not allowed").WithError(cause)
	case status == http.StatusNotFound:
		return errors.NotFoundError(orDefault(message, "Not found")).WithError(cause)
	default:
		return errors.BackendUnavailableError("Backend is unavailable").WithError(cause)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
