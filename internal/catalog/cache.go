package catalog

import (
	"context"
	"errors"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// ProductCache memoizes catalog lookups keyed by product id, plus a sentinel
// entry for the full catalog.
type ProductCache interface {
	Get(ctx context.Context, id int64) (*domain.CatalogProduct, error)
	Set(ctx context.Context, product *domain.CatalogProduct) error
	GetAll(ctx context.Context) ([]domain.CatalogProduct, error)
	SetAll(ctx context.Context, products []domain.CatalogProduct) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
