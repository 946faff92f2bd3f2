package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// allProductsKey is the sentinel cache key for the full catalog.
const allProductsKey = "products:all"

func productKey(id int64) string {
	return fmt.Sprintf("products:%d", id)
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

// RedisCache stores catalog products as JSON with a TTL. The jitter on top of
// the base TTL spreads out expirations so a catalog-wide refresh does not hit
// the directory all at once.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, id int64) (*domain.CatalogProduct, error) {
	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product domain.CatalogProduct
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisCache) Set(ctx context.Context, product *domain.CatalogProduct) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := r.client.Set(ctx, productKey(product.ID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) GetAll(ctx context.Context) ([]domain.CatalogProduct, error) {
	data, err := r.client.Get(ctx, allProductsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []domain.CatalogProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal catalog failed: %w", err)
	}
	return products, nil
}

func (r *RedisCache) SetAll(ctx context.Context, products []domain.CatalogProduct) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog failed: %w", err)
	}
	if err := r.client.Set(ctx, allProductsKey, data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, id int64) error {
	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) DeleteAll(ctx context.Context) error {
	if err := r.client.Del(ctx, allProductsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) ttl() time.Duration {
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	return r.baseTTL + jitter
}
