package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// ProductCatalog is the read side of the cached product directory.
type ProductCatalog interface {
	GetAllProducts(ctx context.Context) ([]domain.CatalogProduct, error)
	GetProductByID(ctx context.Context, id int64) (*domain.CatalogProduct, error)
}

type ProductHandler struct {
	catalog ProductCatalog
}

func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetAllProducts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.GetProductByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
