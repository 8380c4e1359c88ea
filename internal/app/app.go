package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/discovery/internal/catalog"
	catalogmemory "github.com/utafrali/discovery/internal/catalog/memory"
	catalogpostgres "github.com/utafrali/discovery/internal/catalog/postgres"
	"github.com/utafrali/discovery/internal/config"
	"github.com/utafrali/discovery/internal/engine"
	"github.com/utafrali/discovery/internal/event"
	handler "github.com/utafrali/discovery/internal/handler/http"
	"github.com/utafrali/discovery/internal/history"
	"github.com/utafrali/discovery/internal/service"
	"github.com/utafrali/discovery/pkg/database"
	"github.com/utafrali/discovery/pkg/health"
)

// App wires together all dependencies and runs the discovery service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	redis      *redis.Client
	pool       *pgxpool.Pool
	store      *history.Store
	consumers  []*event.Consumer
	httpServer *http.Server
}

// NewApp creates the application, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Search history persistence.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	store := history.NewStore(history.NewRedisKV(redisClient), logger)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init history store: %w", err)
	}

	executor := engine.NewExecutor(store, logger)

	// Catalog provider selection.
	var (
		provider  catalog.Provider
		pool      *pgxpool.Pool
		consumers []*event.Consumer
	)
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		var err error
		pool, err = database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres catalog: %w", err)
		}
		provider = catalogpostgres.NewCatalogProvider(pool)
		logger.Info("postgres catalog provider initialized")
	default:
		memCatalog := catalogmemory.New()
		provider = memCatalog

		topics := []string{
			event.TopicProductCreated,
			event.TopicProductUpdated,
			event.TopicProductDeleted,
		}
		for _, topic := range topics {
			consumers = append(consumers, event.NewConsumer(event.ConsumerConfig{
				Brokers: cfg.KafkaBrokers,
				GroupID: "discovery-service",
				Topic:   topic,
			}, memCatalog, logger))
		}
		logger.Info("in-memory catalog provider initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Int("topic_count", len(topics)),
		)
	}

	discoveryService := service.NewDiscoveryService(provider, executor, store, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if pool != nil {
		healthHandler.Register("postgres", pool.Ping)
	}
	if len(consumers) > 0 {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return event.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	router := handler.NewRouter(discoveryService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		redis:      redisClient,
		pool:       pool,
		store:      store,
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and catalog consumers, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func(c *event.Consumer) {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("catalog consumer: %w", err)
			}
		}(c)
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components and flushes the search history.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("catalog consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.store.Flush(shutdownCtx); err != nil {
		a.logger.Error("history flush error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if err := a.redis.Close(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
