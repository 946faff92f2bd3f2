package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/domain"
)

// Pool bounds sized for a single basket-service instance.
const (
	poolMin = 10
	poolMax = 100
)

// Connect opens the basket database and verifies the server answers before
// any repository is built on top of it. The same timeout bounds both the
// dial and server selection.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(poolMax).
		SetMinPoolSize(poolMin)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to basket store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("basket store unreachable: %w", err)
	}

	return client.Database(database), nil
}

// Prices are persisted as strings so no precision is lost in BSON.
type basketDocument struct {
	ID            string         `bson:"_id"`
	ClientID      int64          `bson:"client_id"`
	Products      []lineDocument `bson:"products"`
	TotalPrice    string         `bson:"total_price"`
	Status        string         `bson:"status"`
	PaymentMethod string         `bson:"payment_method,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

type lineDocument struct {
	ProductID int64  `bson:"product_id"`
	Title     string `bson:"title"`
	UnitPrice string `bson:"unit_price"`
	Quantity  int    `bson:"quantity"`
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, db *mongo.Database) (BasketRepository, error) {
	repo := &mongoRepository{
		collection: db.Collection("baskets"),
	}
	if err := repo.createIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (m *mongoRepository) GetBasket(ctx context.Context, id string) (*domain.Basket, error) {
	var doc basketDocument

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBasketNotFound
		}
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}

	return decodeBasket(doc)
}

func (m *mongoRepository) FindOpenByClient(ctx context.Context, clientID int64) (*domain.Basket, error) {
	var doc basketDocument

	filter := bson.M{"client_id": clientID, "status": string(domain.StatusOpen)}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBasketNotFound
		}
		return nil, fmt.Errorf("failed to find open basket: %w", err)
	}

	return decodeBasket(doc)
}

func (m *mongoRepository) UpsertBasket(ctx context.Context, basket *domain.Basket) error {
	now := time.Now()
	if basket.CreatedAt.IsZero() {
		basket.CreatedAt = now
	}
	basket.UpdatedAt = now

	filter := bson.M{"_id": basket.ID}
	update := bson.M{"$set": encodeBasket(basket)}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert basket: %w", err)
	}
	return nil
}

func (m *mongoRepository) DeleteBasket(ctx context.Context, id string) error {
	// No existence check: deleting an absent basket is a no-op.
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete basket: %w", err)
	}
	return nil
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			// Secondary lookup used by FindOpenByClient.
			Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func encodeBasket(b *domain.Basket) basketDocument {
	lines := make([]lineDocument, len(b.Products))
	for i, line := range b.Products {
		lines[i] = lineDocument{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice.String(),
			Quantity:  line.Quantity,
		}
	}

	return basketDocument{
		ID:            b.ID,
		ClientID:      b.ClientID,
		Products:      lines,
		TotalPrice:    b.TotalPrice.String(),
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func decodeBasket(doc basketDocument) (*domain.Basket, error) {
	total, err := decimal.NewFromString(doc.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid total_price %q: %w", doc.TotalPrice, err)
	}

	lines := make([]domain.ProductLine, len(doc.Products))
	for i, line := range doc.Products {
		price, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price %q: %w", line.UnitPrice, err)
		}
		lines[i] = domain.ProductLine{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: price,
			Quantity:  line.Quantity,
		}
	}

	return &domain.Basket{
		ID:            doc.ID,
		ClientID:      doc.ClientID,
		Products:      lines,
		TotalPrice:    total,
		Status:        domain.Status(doc.Status),
		PaymentMethod: domain.PaymentMethod(doc.PaymentMethod),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
