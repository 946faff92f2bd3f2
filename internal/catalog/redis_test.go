package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.CatalogProduct{
		ID:    1,
		Title: "Smartphone Premium XYZ",
		Price: decimal.RequireFromString("599.99"),
	}

	data, _ := json.Marshal(product)
	mr.Set(productKey(1), string(data))

	result, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Smartphone Premium XYZ", result.Title)
	assert.True(t, result.Price.Equal(product.Price))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(productKey(7), "{not json")

	_, err := cache.Get(context.Background(), 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_RoundTrip(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.CatalogProduct{
		ID:    3,
		Title: "Desk Lamp",
		Price: decimal.RequireFromString("25.00"),
	}

	require.NoError(t, cache.Set(ctx, product))
	require.True(t, mr.Exists(productKey(3)))

	result, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, product.Title, result.Title)
	assert.True(t, result.Price.Equal(product.Price))
}

func TestSet_HasTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	product := &domain.CatalogProduct{ID: 5, Title: "Mug", Price: decimal.RequireFromString("9.90")}
	require.NoError(t, cache.Set(context.Background(), product))

	ttl := mr.TTL(productKey(5))
	assert.Greater(t, ttl.Minutes(), 14.0)
}

func TestGetAll_SetAll(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	_, err := cache.GetAll(ctx)
	require.ErrorIs(t, err, ErrCacheMiss)

	products := []domain.CatalogProduct{
		{ID: 1, Title: "A", Price: decimal.RequireFromString("1.00")},
		{ID: 2, Title: "B", Price: decimal.RequireFromString("2.00")},
	}
	require.NoError(t, cache.SetAll(ctx, products))

	result, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "A", result[0].Title)
	assert.Equal(t, "B", result[1].Title)
}

func TestDelete(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.CatalogProduct{ID: 9, Title: "Chair", Price: decimal.RequireFromString("120.00")}
	require.NoError(t, cache.Set(ctx, product))

	require.NoError(t, cache.Delete(ctx, 9))

	_, err := cache.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// deleting again is harmless
	assert.NoError(t, cache.Delete(ctx, 9))
}

func TestDeleteAll(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, cache.SetAll(ctx, []domain.CatalogProduct{{ID: 1, Title: "A", Price: decimal.Zero}}))

	require.NoError(t, cache.DeleteAll(ctx))

	_, err := cache.GetAll(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
