package catalog

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// Service serves product lookups cache-aside: the cache is consulted first
// and misses are delegated to the directory client. Successful fetches
// populate the cache; failed ones never do, so a transient outage cannot
// poison an entry. Cache errors other than a miss are logged and treated as
// a miss.
type Service struct {
	client DirectoryClient
	cache  ProductCache
	sfg    singleflight.Group // Prevents cache stampede
}

func NewService(client DirectoryClient, cache ProductCache) *Service {
	return &Service{
		client: client,
		cache:  cache,
	}
}

func (s *Service) GetAllProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	v, err, _ := s.sfg.Do(allProductsKey, func() (interface{}, error) {
		products, err := s.cache.GetAll(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.WarnContext(ctx, "product cache read failed", "error", err)
		}

		products, err = s.client.FetchAll(ctx)
		if err != nil {
			return nil, err
		}

		if errSet := s.cache.SetAll(ctx, products); errSet != nil {
			slog.WarnContext(ctx, "product cache populate failed", "error", errSet)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CatalogProduct), nil
}

// GetProductByID returns the cached product for id or fetches it from the
// directory on a miss.
func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.CatalogProduct, error) {
	return s.getProduct(ctx, id, false)
}

// GetProductByIDStrict additionally rejects a semantically empty product
// returned by a "successful" directory call, without caching it.
func (s *Service) GetProductByIDStrict(ctx context.Context, id int64) (*domain.CatalogProduct, error) {
	return s.getProduct(ctx, id, true)
}

func (s *Service) getProduct(ctx context.Context, id int64, strict bool) (*domain.CatalogProduct, error) {
	// Strict and non-strict callers share one flight per id, so the
	// emptiness check happens after the flight: a strict caller that joins
	// a non-strict fetch still gets the stricter contract.
	v, err, _ := s.sfg.Do(productKey(id), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}

		product, err = s.client.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Semantically empty results stay out of the cache.
		if !emptyProduct(product) {
			if errSet := s.cache.Set(ctx, product); errSet != nil {
				slog.WarnContext(ctx, "product cache populate failed", "product_id", id, "error", errSet)
			}
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}

	product := v.(*domain.CatalogProduct)
	if strict && emptyProduct(product) {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func emptyProduct(p *domain.CatalogProduct) bool {
	return p == nil || p.ID == 0
}
