package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/handler"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/repository"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/session"
	"github.com/AchilleasB/salon-booking/booking-service/internal/config"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/services"
)

const (
	authRateLimit   = 1.0 // requests per second per IP on login/register
	authRateBurst   = 5
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Environment)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	if cfg.RunMigrations {
		if err := repository.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("database schema applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// revocation checks fail open, so the API can still serve
		logger.Warn("redis unavailable at startup", zap.Error(err))
	}

	sessions := session.NewRedisStore(redisClient, config.NewCircuitBreaker(config.BreakerRedis, logger))

	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	authService := services.NewAuthService(userRepo, sessions, cfg.JWTPrivateKey, logger)
	if cfg.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	announcementService := services.NewAnnouncementService(repository.NewAnnouncementRepository(db), logger)
	messagingService := services.NewMessagingService(repository.NewMessageRepository(db), logger)
	catalogService := services.NewCatalogService(repository.NewServiceRepository(db), appointmentRepo, logger)
	ratingService := services.NewRatingService(appointmentRepo, logger)
	dashboardService := services.NewDashboardService(repository.NewStatsRepository(db))
	userDirectory := services.NewUserDirectory(userRepo)

	limiter := middleware.NewRateLimiter(authRateLimit, authRateBurst)

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           handler.NewAuthHandler(authService, logger),
		Announcements:  handler.NewAnnouncementHandler(announcementService, logger),
		Messages:       handler.NewMessageHandler(messagingService, logger),
		Services:       handler.NewServiceHandler(catalogService, logger),
		Ratings:        handler.NewRatingHandler(ratingService, logger),
		Admin:          handler.NewAdminHandler(dashboardService, userDirectory, logger),
		Health: handler.NewHealthHandler(db, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
		AuthMiddleware: middleware.NewAuthMiddleware(cfg.JWTPublicKey, sessions, logger),
		AuthLimiter:    limiter,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
