package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/config"
	handlerHTTP "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/handler/http"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository/postgres"
	redisRepo "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository/redis"
	kafkaEvents "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/events/kafka"
	dbPostgres "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/infrastructure/database/postgres"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/infrastructure/security"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/service"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/migrations"
)

// Run wires the service together and blocks until shutdown.
func Run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.URL(), logger); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	pool, err := dbPostgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	var producer *kafkaEvents.Producer
	if cfg.Kafka.Enabled {
		producer = kafkaEvents.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer producer.Close()
	}

	hasher := security.NewArgon2idHasher(security.DefaultArgon2idParams())
	signer, err := security.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepositoryPostgres(pool)
	linkRepo := postgres.NewExternalAccountRepositoryPostgres(pool)
	auditRepo := postgres.NewRefreshSessionRepositoryPostgres(pool)
	sessionCache := redisRepo.NewSessionCache(redisClient, logger)

	sessions := service.NewSessionStore(sessionCache, auditRepo, signer, cfg.JWT.RefreshTTL(), logger)
	linker := service.NewIdentityLinker(userRepo, linkRepo, hasher, logger)
	provider := service.NewOAuth2ProviderClient(cfg.OAuthProviders, logger)
	authService := service.NewAuthService(
		userRepo, linkRepo, sessions, hasher, signer, linker, provider, producer, logger,
	)

	authHandler := handlerHTTP.NewAuthHandler(authService, logger)
	meHandler := handlerHTTP.NewMeHandler(authService, logger)
	healthHandler := handlerHTTP.NewHealthHandler(pool, redisClient, logger)
	router := handlerHTTP.NewRouter(cfg, authHandler, meHandler, healthHandler, signer, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
