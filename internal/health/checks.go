package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// BackendChecker is satisfied by the backend client.
type BackendChecker interface {
	Healthy(ctx context.Context) error
}

type Endpoints struct {
	Backend BackendChecker
}

// NewHealthHandler registers the redis and backend checks, plus postgres when
// carts are persisted there.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
		{
			Name:      "backend",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints == nil || endpoints.Backend == nil {
					return fmt.Errorf("backend client is not initialized")
				}
				return endpoints.Backend.Healthy(ctx)
			},
		},
	}

	if cfg.Storage.Driver == config.StorageDriverPostgres {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "kirana-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
