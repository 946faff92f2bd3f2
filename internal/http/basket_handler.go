package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/service"
)

// BasketService is the slice of the engine the handlers need.
type BasketService interface {
	CreateBasket(ctx context.Context, clientID int64, lines []service.LineRequest) (*domain.Basket, bool, error)
	GetBasketByID(ctx context.Context, id string) (*domain.Basket, error)
	UpdateBasket(ctx context.Context, id string, lines []service.LineRequest) (*domain.Basket, error)
	UpdatePaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.Basket, error)
	DeleteBasket(ctx context.Context, id string) error
}

type BasketHandler struct {
	service BasketService
}

func NewBasketHandler(service BasketService) *BasketHandler {
	return &BasketHandler{service: service}
}

type BasketRequestDTO struct {
	ClientID int64            `json:"client_id"`
	Products []ProductLineDTO `json:"products"`
}

type ProductLineDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PaymentRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *BasketHandler) CreateBasket(w http.ResponseWriter, r *http.Request) {
	var req BasketRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lines, ok := validateBasketRequest(w, req)
	if !ok {
		return
	}

	basket, created, err := h.service.CreateBasket(r.Context(), req.ClientID, lines)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// 201 for a fresh basket, 200 when the lines were merged into the
	// client's existing open basket.
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, basket)
}

func (h *BasketHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	basket, err := h.service.GetBasketByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, basket)
}

func (h *BasketHandler) UpdateBasket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req BasketRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lines, ok := validateLines(w, req.Products)
	if !ok {
		return
	}

	basket, err := h.service.UpdateBasket(r.Context(), id, lines)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, basket)
}

func (h *BasketHandler) PayBasket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "unknown payment method")
		return
	}

	basket, err := h.service.UpdatePaymentMethod(r.Context(), id, method)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, basket)
}

func (h *BasketHandler) DeleteBasket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteBasket(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateBasketRequest(w http.ResponseWriter, req BasketRequestDTO) ([]service.LineRequest, bool) {
	if req.ClientID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_client_id", "client_id must be positive")
		return nil, false
	}
	if len(req.Products) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "products must not be empty")
		return nil, false
	}
	return validateLines(w, req.Products)
}

func validateLines(w http.ResponseWriter, products []ProductLineDTO) ([]service.LineRequest, bool) {
	lines := make([]service.LineRequest, 0, len(products))
	for _, p := range products {
		if p.ProductID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
			return nil, false
		}
		if p.Quantity < 1 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
			return nil, false
		}
		lines = append(lines, service.LineRequest{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return lines, true
}
