package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/sidibe/caisse/internal/adapter/http"
	"github.com/sidibe/caisse/internal/adapter/http/handler"
	postgresRepo "github.com/sidibe/caisse/internal/adapter/repository/postgres"
	redisRepo "github.com/sidibe/caisse/internal/adapter/repository/redis"
	"github.com/sidibe/caisse/internal/infrastructure/auth"
	"github.com/sidibe/caisse/internal/infrastructure/config"
	"github.com/sidibe/caisse/internal/infrastructure/eventpublisher"
	"github.com/sidibe/caisse/internal/infrastructure/logger"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/infrastructure/postgres"
	"github.com/sidibe/caisse/internal/infrastructure/redis"
	"github.com/sidibe/caisse/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = zlog

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	zlog.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		zlog.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	zlog.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	idGen := postgresRepo.NewULIDGenerator()
	accountRepo := postgresRepo.NewAccountRepository(pool, idGen)
	creditRepo := postgresRepo.NewCreditRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	movementRepo := postgresRepo.NewStockMovementRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	refillRepo := postgresRepo.NewRefillRepository(pool)
	shopRepo := redisRepo.NewCachedShopRepository(
		postgresRepo.NewShopRepository(pool), redisRepo.NewCache(redisClient))
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	refSeq := postgresRepo.NewReferenceSequence()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	executor := usecase.NewExecutor(txManager, accountRepo, outboxRepo, postgresRepo.NewRetrier(), m)
	creditUC := usecase.NewCreditUseCase(executor, shopRepo, creditRepo, paymentRepo, refSeq, idGen, m)
	expenseUC := usecase.NewExpenseUseCase(executor, shopRepo, expenseRepo, idGen, m)
	stockUC := usecase.NewStockUseCase(executor, shopRepo, movementRepo, productRepo, idGen, m)
	handoverUC := usecase.NewHandoverUseCase(executor, shopRepo, depositRepo, refillRepo, idGen, m)
	accountUC := usecase.NewAccountUseCase(accountRepo, shopRepo)

	// Outbox publisher
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient),
		Logger:     slog.Default(),
		Metrics:    m,
		BatchSize:  cfg.PublishBatch,
		Interval:   cfg.PublishInterval,
	})

	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			zlog.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	var verifier *auth.Verifier
	if cfg.AuthEnabled {
		verifier = auth.NewVerifier(cfg.JWTSecret)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CreditHandler:    handler.NewCreditHandler(creditUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		StockHandler:     handler.NewStockHandler(stockUC),
		HandoverHandler:  handler.NewHandoverHandler(handoverUC),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Verifier:         verifier,
		IdempotencyStore: idempotencyStore,
		Metrics:          m,
		Logger:           zlog,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		zlog.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server stopped")
}
