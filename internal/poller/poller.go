package poller

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	c "github.com/Felipecardosovargas/CardosoCheckout/internal/catalog"
)

// Poller consumes catalog-update events and drops the affected product cache
// entries, so upstream title/price changes become visible before the TTL
// would have expired them.
type Poller struct {
	cache  c.ProductCache
	reader *kafka.Reader
}

func NewPoller(cache c.ProductCache, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "catalog-updates",
		GroupID:  "basket-service-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{cache: cache, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.consumeAndInvalidate(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		slog.Error("error closing kafka reader", "error", err)
	}
}

func (p *Poller) consumeAndInvalidate(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		slog.Error("error reading message", "error", err)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		slog.Error("error parsing message", "error", err)
		return
	}

	// Numbers decode as float64 from generic JSON.
	rawID, ok := payload["product_id"].(float64)
	if !ok {
		slog.Error("missing or invalid product_id", "payload", string(m.Value))
		return
	}
	productID := int64(rawID)

	if err := p.cache.Delete(ctx, productID); err != nil {
		slog.Error("failed to invalidate product entry", "product_id", productID, "error", err)
	}

	// The full-catalog entry embeds the product too.
	if err := p.cache.DeleteAll(ctx); err != nil {
		slog.Error("failed to invalidate catalog entry", "error", err)
	}
}
