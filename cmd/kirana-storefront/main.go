package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/backend"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/health"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/kirana-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/kirana-storefront/internal/services"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Cart persistence
	persister, closeStorage, err := newCartPersister(ctx, cfg, redisCache)
	if err != nil {
		slog.Error("❌ Error setting up cart storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	backendClient := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	carts := cart.NewRegistry(persister, logger)
	go evictIdleCarts(ctx, carts, cfg.Storage.IdleTimeout)

	catalogService := service.NewCatalogService(backendClient, redisCache, &cfg.Cache)
	cartService := service.NewCartService(carts, catalogService)
	checkoutService := service.NewCheckoutService(carts, backendClient)
	authService := service.NewAuthService(repository.NewRateLimitRepo(redisClient, cfg), redisCache, jwtKey, tokenTTL)
	profileService := service.NewProfileService(backendClient)
	adminService := service.NewAdminService(backendClient, redisCache)

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService)
	userHandler := handlers.NewUserHandler(authService, profileService)
	adminHandler := handlers.NewAdminHandler(adminService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey, authService)

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{Backend: backendClient})
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.PlaceOrder()))
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users/logout", authMiddleware.Authenticate(userHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.SaveProfile()))
	routerMux.HandleFunc("GET /api/v1/users/role", authMiddleware.Authenticate(userHandler.Role()))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Authenticate(adminHandler.CreateProduct()))
	routerMux.HandleFunc("POST /api/v1/admin/categories", authMiddleware.Authenticate(adminHandler.CreateCategory()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())

	// Middleware chaining. metrics must wrap the mux directly to see r.Pattern.
	var handler http.Handler = metrics.Middleware(routerMux)
	handler = middleware.CartSession(cfg.Storage.CartTTL, cfg.Env != "local")(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "kirana-storefront")

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// newCartPersister builds the snapshot store selected by storage.driver. The
// returned close func is always safe to call.
func newCartPersister(ctx context.Context, cfg *config.Config, c cache.Cache) (cart.Persister, func(), error) {

	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		return repository.NewRedisCartRepo(c, cfg.Storage.CartTTL), noop, nil

	case config.StorageDriverPostgres:
		repos, err := repository.New(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}

		carts := repository.NewCartRepo(repos.DB)
		go purgeStaleCarts(ctx, carts, cfg.Storage.CartTTL)

		return carts, func() {
			if err := repos.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}, nil

	default:
		persister, err := repository.NewFileCartRepo(cfg.Storage.FileDir)
		return persister, noop, err
	}
}

// evictIdleCarts drops in-memory carts unused for longer than idle so the next
// request re-hydrates them from the persister.
func evictIdleCarts(ctx context.Context, carts *cart.Registry, idle time.Duration) {

	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := carts.EvictIdle(idle); evicted > 0 {
				slog.Debug("Evicted idle carts", slog.Int("count", evicted))
			}
		}
	}
}

// purgeStaleCarts deletes postgres snapshots idle for longer than ttl, once an
// hour until ctx is done.
func purgeStaleCarts(ctx context.Context, carts repository.CartRepository, ttl time.Duration) {

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := carts.PurgeBefore(ctx, time.Now().Add(-ttl))
			if err != nil {
				slog.Error("Failed to purge stale carts", slog.String("error", err.Error()))
				continue
			}
			if purged > 0 {
				slog.Info("Purged stale carts", slog.Int64("count", purged))
			}
		}
	}
}
