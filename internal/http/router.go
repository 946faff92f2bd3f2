package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all handlers into a chi router with the global middleware
// stack.
func NewRouter(baskets *BasketHandler, products *ProductHandler, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/basket", func(r chi.Router) {
		r.Post("/", baskets.CreateBasket)
		r.Get("/{id}", baskets.GetBasket)
		r.Put("/{id}", baskets.UpdateBasket)
		r.Put("/{id}/payment", baskets.PayBasket)
		r.Delete("/{id}", baskets.DeleteBasket)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.GetAllProducts)
		r.Get("/{id}", products.GetProductByID)
	})

	return r
}
