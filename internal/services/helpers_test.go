package service_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/config"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testCacheConfig = &config.CacheConfig{DefaultTTL: 5 * time.Minute, ProductTTL: 2 * time.Minute}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func newTestCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, client := newTestRedis(t)

	return cacheFor(client), mr
}

func cacheFor(client *redis.Client) cache.Cache {
	return cache.NewRedisCache(client, testCacheConfig)
}

func newRegistry() *cart.Registry {
	return cart.NewRegistry(nil, nil)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func rice() *models.Product {
	return &models.Product{
		ID:           1,
		Name:         "Basmati Rice",
		PriceInPaise: 500,
		Stock:        10,
		InStock:      true,
		Variants: []models.Variant{
			{VariantID: 0, Name: "1 kg", PriceInPaise: 450},
			{VariantID: 7, Name: "5 kg", PriceInPaise: 2000},
		},
	}
}

func dal() *models.Product {
	return &models.Product{ID: 2, Name: "Toor Dal", PriceInPaise: 300, Stock: 4, InStock: true}
}

// cartMutations reads storefront_cart_mutations_total{op} from the default registry.
func cartMutations(t *testing.T, op string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "storefront_cart_mutations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "op" && label.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}
