package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

func setupTestDB(t *testing.T) (BasketRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := Connect(ctx, uri, "testdb", 10*time.Second)
	require.NoError(t, err)

	repo, err := NewMongoRepository(ctx, db)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func testBasket(id string, clientID int64) *domain.Basket {
	basket := &domain.Basket{
		ID:       id,
		ClientID: clientID,
		Status:   domain.StatusOpen,
		Products: []domain.ProductLine{
			{ProductID: 1, Title: "Smartphone Premium XYZ", UnitPrice: decimal.RequireFromString("599.99"), Quantity: 2},
		},
	}
	basket.RecalculateTotal()
	return basket
}

func TestGetBasket_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBasket(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBasketNotFound)
}

func TestUpsertBasket_RoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	basket := testBasket("b-1", 12345)

	require.NoError(t, repo.UpsertBasket(ctx, basket))
	assert.False(t, basket.CreatedAt.IsZero())
	assert.False(t, basket.UpdatedAt.IsZero())

	loaded, err := repo.GetBasket(ctx, "b-1")
	require.NoError(t, err)

	assert.Equal(t, int64(12345), loaded.ClientID)
	assert.Equal(t, domain.StatusOpen, loaded.Status)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "Smartphone Premium XYZ", loaded.Products[0].Title)
	assert.True(t, loaded.Products[0].UnitPrice.Equal(decimal.RequireFromString("599.99")))
	assert.True(t, loaded.TotalPrice.Equal(decimal.RequireFromString("1199.98")))
}

func TestUpsertBasket_UpdatesExisting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	basket := testBasket("b-2", 1)
	require.NoError(t, repo.UpsertBasket(ctx, basket))

	basket.Status = domain.StatusSold
	basket.PaymentMethod = domain.PaymentCreditCard
	require.NoError(t, repo.UpsertBasket(ctx, basket))

	loaded, err := repo.GetBasket(ctx, "b-2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSold, loaded.Status)
	assert.Equal(t, domain.PaymentCreditCard, loaded.PaymentMethod)
}

func TestFindOpenByClient(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repo.FindOpenByClient(ctx, 42)
	require.ErrorIs(t, err, ErrBasketNotFound)

	open := testBasket("b-open", 42)
	require.NoError(t, repo.UpsertBasket(ctx, open))

	sold := testBasket("b-sold", 42)
	sold.Status = domain.StatusSold
	require.NoError(t, repo.UpsertBasket(ctx, sold))

	found, err := repo.FindOpenByClient(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "b-open", found.ID)
}

func TestFindOpenByClient_IgnoresSold(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sold := testBasket("b-3", 7)
	sold.Status = domain.StatusSold
	require.NoError(t, repo.UpsertBasket(ctx, sold))

	_, err := repo.FindOpenByClient(ctx, 7)
	assert.ErrorIs(t, err, ErrBasketNotFound)
}

func TestDeleteBasket(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.UpsertBasket(ctx, testBasket("b-4", 9)))

	require.NoError(t, repo.DeleteBasket(ctx, "b-4"))

	_, err := repo.GetBasket(ctx, "b-4")
	assert.ErrorIs(t, err, ErrBasketNotFound)
}

func TestDeleteBasket_AbsentIsNoOp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, repo.DeleteBasket(context.Background(), "never-existed"))
}
