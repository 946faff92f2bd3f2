package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a basket. The only transition is
// OPEN -> SOLD, performed when a payment method is recorded.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusSold Status = "SOLD"
)

// PaymentMethod identifies how a sold basket was paid.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
	PaymentBankSlip   PaymentMethod = "BANK_SLIP"
)

// Valid reports whether p is one of the accepted payment methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankSlip:
		return true
	}
	return false
}

// Basket is a client's shopping cart aggregate. TotalPrice is derived from
// Products and must never be set directly; callers mutate Products and then
// call RecalculateTotal.
type Basket struct {
	ID            string          `json:"id"`
	ClientID      int64           `json:"client_id"`
	Products      []ProductLine   `json:"products"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        Status          `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductLine is a snapshot of catalog data taken when the product was added
// to the basket. Title and UnitPrice are not refreshed if the catalog changes
// later. Two lines may reference the same product id; they stay separate
// entries rather than being merged into one quantity.
type ProductLine struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns UnitPrice * Quantity.
func (l ProductLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RecalculateTotal recomputes TotalPrice from scratch over all product lines.
// Totals are always rebuilt, never patched incrementally.
func (b *Basket) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range b.Products {
		total = total.Add(line.Subtotal())
	}
	b.TotalPrice = total
}

// CatalogProduct is the canonical product record owned by the external
// product directory. This service only caches copies of it.
type CatalogProduct struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}
