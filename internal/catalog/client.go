package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

var (
	// ErrProductNotFound means the directory has no product for the id.
	ErrProductNotFound = errors.New("product not found")
	// ErrUpstreamUnavailable means the directory could not be reached or
	// answered with an unexpected error.
	ErrUpstreamUnavailable = errors.New("product directory unavailable")
)

// DirectoryClient fetches catalog data from the external product directory.
type DirectoryClient interface {
	FetchAll(ctx context.Context) ([]domain.CatalogProduct, error)
	FetchByID(ctx context.Context, id int64) (*domain.CatalogProduct, error)
}

// HTTPDirectoryClient talks to the product directory over HTTP. Calls run
// through a circuit breaker; while the breaker is open every call fails fast
// with ErrUpstreamUnavailable. The directory answers 400 for unknown product
// ids, so both 400 and 404 map to ErrProductNotFound.
type HTTPDirectoryClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewHTTPDirectoryClient(baseURL string, timeout time.Duration) *HTTPDirectoryClient {
	return &HTTPDirectoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "product-directory",
			MaxRequests: 3,
			Timeout:     30 * time.Second,
			// A missing product is a valid answer, not an outage.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrProductNotFound)
			},
		}),
	}
}

func (c *HTTPDirectoryClient) FetchAll(ctx context.Context) ([]domain.CatalogProduct, error) {
	body, err := c.get(ctx, c.baseURL+"/products")
	if err != nil {
		return nil, err
	}

	var products []domain.CatalogProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog: %v", ErrUpstreamUnavailable, err)
	}
	return products, nil
}

func (c *HTTPDirectoryClient) FetchByID(ctx context.Context, id int64) (*domain.CatalogProduct, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var product domain.CatalogProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: decoding product: %v", ErrUpstreamUnavailable, err)
	}
	return &product, nil
}

func (c *HTTPDirectoryClient) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
			}
			return data, nil
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
			return nil, ErrProductNotFound
		default:
			return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
		}
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrUpstreamUnavailable) {
			return nil, err
		}
		// Breaker-open and request build errors land here.
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return body, nil
}
