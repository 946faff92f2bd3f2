package repository

import (
	"context"
	"errors"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// BasketRepository defines the interface for basket data operations.
// Consumers define this interface, not the MongoDB implementation.
type BasketRepository interface {
	GetBasket(ctx context.Context, id string) (*domain.Basket, error)
	// FindOpenByClient returns the client's basket with status OPEN, or
	// ErrBasketNotFound when the client has none.
	FindOpenByClient(ctx context.Context, clientID int64) (*domain.Basket, error)
	UpsertBasket(ctx context.Context, basket *domain.Basket) error
	// DeleteBasket removes the basket with the given id. Deleting an absent
	// id is a no-op success.
	DeleteBasket(ctx context.Context, id string) error
}

var ErrBasketNotFound = errors.New("basket not found")
