package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akdeniz-handel/catalog-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&status=available", nil)
	second := httptest.NewRequest(http.MethodGet, "/api/v1/products?status=available&page=2", nil)

	assert.Equal(t, cacheKey(first), cacheKey(second))
	assert.Equal(t, "cache:/api/v1/products?page=2&status=available", cacheKey(first))

	bare := httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	assert.Equal(t, "cache:/api/v1/services", cacheKey(bare))
}

func TestDetailRoutesBypassResponseCache(t *testing.T) {
	// An unreachable redis makes every cached route report a miss while
	// still exercising the middleware wiring.
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:1", MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })

	server, db := newTestServerWithRedis(t, rdb)

	product := &models.Product{
		Title:            "Nussbaumtisch",
		ShortDescription: "Runde Platte",
		Price:            decimal.NewFromInt(180),
		Condition:        models.ConditionGood,
		Status:           models.ProductAvailable,
	}
	require.NoError(t, db.ProductRepo().Add(product))

	// Listings go through the cache.
	resp := getJSON(t, server.URL+"/api/v1/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	resp.Body.Close()

	// Detail pages do not, so every anonymous visit lands on the
	// view counter.
	for i := 0; i < 2; i++ {
		resp = getJSON(t, server.URL+"/api/v1/products/"+product.Slug, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-Cache"))
		resp.Body.Close()
	}

	reloaded, err := db.ProductRepo().FindBySlug(product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ViewsCount)
}
