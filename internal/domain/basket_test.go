package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateTotal(t *testing.T) {
	basket := &Basket{
		Products: []ProductLine{
			{ProductID: 1, UnitPrice: decimal.RequireFromString("599.99"), Quantity: 2},
			{ProductID: 2, UnitPrice: decimal.RequireFromString("49.99"), Quantity: 1},
		},
	}

	basket.RecalculateTotal()

	assert.True(t, basket.TotalPrice.Equal(decimal.RequireFromString("1249.97")),
		"expected 1249.97, got %s", basket.TotalPrice)
}

func TestRecalculateTotal_EmptyBasket(t *testing.T) {
	basket := &Basket{}

	basket.RecalculateTotal()

	assert.True(t, basket.TotalPrice.IsZero())
}

func TestRecalculateTotal_ReplacesPreviousTotal(t *testing.T) {
	basket := &Basket{
		Products: []ProductLine{
			{ProductID: 1, UnitPrice: decimal.RequireFromString("10.50"), Quantity: 3},
		},
	}
	basket.RecalculateTotal()
	require.True(t, basket.TotalPrice.Equal(decimal.RequireFromString("31.50")))

	basket.Products = basket.Products[:0]
	basket.RecalculateTotal()

	assert.True(t, basket.TotalPrice.IsZero(), "total must be rebuilt, not patched")
}

func TestProductLine_Subtotal(t *testing.T) {
	line := ProductLine{UnitPrice: decimal.RequireFromString("599.99"), Quantity: 2}

	assert.True(t, line.Subtotal().Equal(decimal.RequireFromString("1199.98")))
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCreditCard.Valid())
	assert.True(t, PaymentPix.Valid())
	assert.False(t, PaymentMethod("CASH_ON_THE_MOON").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
