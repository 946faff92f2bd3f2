package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Felipecardosovargas/CardosoCheckout/internal/catalog"
	h "github.com/Felipecardosovargas/CardosoCheckout/internal/http"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/poller"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/repository"
	s "github.com/Felipecardosovargas/CardosoCheckout/internal/service"
	"github.com/Felipecardosovargas/CardosoCheckout/internal/telemetry"
)

func main() {
	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	productDirectoryURL := getEnv("PRODUCT_DIRECTORY_URL", "https://api.escuelajs.co/api/v1")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDBName := getEnv("MONGO_DB_NAME", "basketdb")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	requestTimeout := 30 * time.Second

	telemetry.InitLogger()

	ctx := context.Background()
	shutdownTracer, err := telemetry.SetupTracer(ctx, "basket-service")
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer shutdownTracer(context.Background())

	// Set up MongoDB connection
	mongoDB, err := repository.Connect(ctx, mongoURI, mongoDBName, 10*time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)

	repo, err := repository.NewMongoRepository(ctx, mongoDB)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}
	slog.Info("connected to MongoDB", "uri", mongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	slog.Info("redis ping succeeded")

	directory := catalog.NewHTTPDirectoryClient(productDirectoryURL, 10*time.Second)
	productCache := catalog.NewRedisCache(redisClient)
	catalogService := catalog.NewService(directory, productCache)
	basketService := s.NewBasketService(repo, catalogService)

	basketHandler := h.NewBasketHandler(basketService)
	productHandler := h.NewProductHandler(catalogService)
	router := h.NewRouter(basketHandler, productHandler, requestTimeout)

	// Catalog-update consumer keeps the product cache from serving stale
	// prices. Optional: only started when brokers are configured.
	pollerCtx, cancelPoller := context.WithCancel(ctx)
	defer cancelPoller()
	if kafkaBrokers != "" {
		p := poller.NewPoller(productCache, strings.Split(kafkaBrokers, ",")...)
		defer p.Close()
		go p.Run(pollerCtx)
		slog.Info("catalog-update poller started", "brokers", kafkaBrokers)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: otelhttp.NewHandler(router, "basket-service"),
	}

	go func() {
		slog.Info("basket service listening", "port", httpPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down basket service")
	cancelPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("basket service stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
