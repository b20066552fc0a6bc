package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/messaging"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/outbox"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/repository"
	"github.com/AchilleasB/salon-booking/booking-service/internal/config"
)

func main() {
	cfg := config.LoadRelayConfig()

	logger, err := config.NewLogger(cfg.Environment)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("relay exited", zap.Error(err))
	}
	logger.Info("relay shutdown complete")
}

func run(cfg *config.RelayConfig, logger *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	broker, err := messaging.NewRabbitMQBroker(
		cfg.RabbitMQURL,
		cfg.EventsQueueName,
		config.NewCircuitBreaker(config.BreakerRabbitMQ, logger),
	)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, broker.Close()) }()
	logger.Info("connected to RabbitMQ", zap.String("queue", cfg.EventsQueueName))

	relay := outbox.NewRelay(
		db,
		cfg.DatabaseURL,
		broker,
		config.NewCircuitBreaker(config.BreakerRelayPostgres, logger),
		logger,
	)

	healthServer := &http.Server{
		Addr:              ":" + cfg.HealthPort,
		Handler:           outbox.HealthRouter(chi.NewRouter(), relay),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("relay worker starting")
		return relay.Start(gctx)
	})

	g.Go(func() error {
		logger.Info("health server starting", zap.String("port", cfg.HealthPort))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
