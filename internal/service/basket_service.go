package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/repository"
)

// ErrBasketClosed means a mutation was attempted on a basket whose status
// forbids it.
var ErrBasketClosed = errors.New("cannot update a closed basket")

// LineRequest is a caller's reference to a catalog product and how many of
// it to put in the basket.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// ProductResolver resolves catalog products for basket lines. Satisfied by
// catalog.Service.
type ProductResolver interface {
	GetProductByID(ctx context.Context, id int64) (*domain.CatalogProduct, error)
}

// BasketService owns the basket lifecycle and pricing rules. Baskets are
// never cached here; the store is the single source of truth.
type BasketService struct {
	repo     repository.BasketRepository
	products ProductResolver
}

func NewBasketService(repo repository.BasketRepository, products ProductResolver) *BasketService {
	return &BasketService{
		repo:     repo,
		products: products,
	}
}

// CreateBasket merges the requested lines into the client's open basket, or
// creates a new one when the client has none. The returned bool reports
// whether a new basket was created. Requested lines are appended as-is: a
// second request for the same product id becomes a second line, not a
// quantity bump.
//
// All lines are resolved before the basket is touched, so a failed lookup
// leaves both memory and store unchanged.
func (s *BasketService) CreateBasket(ctx context.Context, clientID int64, lines []LineRequest) (*domain.Basket, bool, error) {
	existing, err := s.repo.FindOpenByClient(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrBasketNotFound) {
		return nil, false, err
	}

	resolved, errResolve := s.resolveLines(ctx, lines)
	if errResolve != nil {
		return nil, false, errResolve
	}

	if err == nil {
		existing.Products = append(existing.Products, resolved...)
		existing.RecalculateTotal()
		if errUpsert := s.repo.UpsertBasket(ctx, existing); errUpsert != nil {
			return nil, false, errUpsert
		}
		return existing, false, nil
	}

	basket := &domain.Basket{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Status:   domain.StatusOpen,
		Products: resolved,
	}
	basket.RecalculateTotal()

	if errUpsert := s.repo.UpsertBasket(ctx, basket); errUpsert != nil {
		return nil, false, errUpsert
	}
	return basket, true, nil
}

func (s *BasketService) GetBasketByID(ctx context.Context, id string) (*domain.Basket, error) {
	return s.repo.GetBasket(ctx, id)
}

// UpdateBasket replaces the entire product list of an open basket with the
// requested lines, discarding the previous ones.
func (s *BasketService) UpdateBasket(ctx context.Context, id string, lines []LineRequest) (*domain.Basket, error) {
	basket, err := s.repo.GetBasket(ctx, id)
	if err != nil {
		return nil, err
	}

	if basket.Status != domain.StatusOpen {
		return nil, ErrBasketClosed
	}

	resolved, err := s.resolveLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	basket.Products = resolved
	basket.RecalculateTotal()

	if err := s.repo.UpsertBasket(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// UpdatePaymentMethod records the payment method and closes the sale. The
// status is set to SOLD unconditionally; repeating the call re-persists the
// same outcome.
func (s *BasketService) UpdatePaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.Basket, error) {
	basket, err := s.repo.GetBasket(ctx, id)
	if err != nil {
		return nil, err
	}

	basket.PaymentMethod = method
	basket.Status = domain.StatusSold

	if err := s.repo.UpsertBasket(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// DeleteBasket removes the basket by id. There is no existence check, so
// deleting an unknown id succeeds.
func (s *BasketService) DeleteBasket(ctx context.Context, id string) error {
	return s.repo.DeleteBasket(ctx, id)
}

func (s *BasketService) resolveLines(ctx context.Context, lines []LineRequest) ([]domain.ProductLine, error) {
	resolved := make([]domain.ProductLine, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, domain.ProductLine{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
	}
	return resolved, nil
}
