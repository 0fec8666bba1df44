package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/contested/internal/common/clock"
	"github.com/KirkDiggler/contested/internal/common/uuid"
	"github.com/KirkDiggler/contested/internal/config"
	"github.com/KirkDiggler/contested/internal/dice"
	"github.com/KirkDiggler/contested/internal/handlers/discord"
	"github.com/KirkDiggler/contested/internal/logging"
	"github.com/KirkDiggler/contested/internal/metrics"
	contestRepo "github.com/KirkDiggler/contested/internal/repositories/contest"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	contestService "github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/handoff"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("contested-bot", "info").WithError(err).Fatal("failed to load config")
	}

	logger := logging.New("contested-bot", cfg.LogLevel)

	if cfg.DiscordToken == "" {
		logger.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}

	// Initialize repositories
	contests, err := contestRepo.NewRedis(&contestRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create contest repository")
	}

	entities, err := entityRepo.NewRedis(&entityRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create entity repository")
	}

	publisher, err := handoff.NewRedis(&handoff.RedisConfig{
		RedisClient: redisClient,
		Channel:     cfg.ResolvedChannel,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create resolution publisher")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		logger.WithError(err).Fatal("failed to create messaging service")
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		logger.WithError(err).Fatal("failed to create discord session")
	}

	updater, err := discord.NewMessageUpdater(&discord.UpdaterConfig{
		Session:          session,
		MessagingService: messagingSvc,
		EntityRepo:       entities,
		Logger:           logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create message updater")
	}

	updaterCtx, stopUpdater := context.WithCancel(context.Background())
	defer stopUpdater()
	go updater.Run(updaterCtx)

	registry := prometheus.NewRegistry()

	contestSvc, err := contestService.New(&contestService.Config{
		AllowLuckyUnlucky: cfg.AllowLuckyUnlucky,
		MaxWriteRetries:   cfg.MaxWriteRetries,
		ContestRepo:       contests,
		EntityRepo:        entities,
		DiceRoller:        dice.New(&dice.Config{Seed: cfg.DiceSeed}),
		Clock:             clock.New(),
		UUIDGenerator:     uuid.New(),
		Publisher:         publisher,
		Listeners:         []contestService.Listener{updater},
		Logger:            logger,
		Metrics:           metrics.New(registry),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create contest service")
	}

	bot, err := discord.New(&discord.Config{
		Session:          session,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		GameMasterRoleID: cfg.GameMasterRoleID,
		ContestService:   contestSvc,
		MessagingService: messagingSvc,
		EntityRepo:       entities,
		Logger:           logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create discord bot")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()

	// Start the bot
	if err := bot.Start(); err != nil {
		logger.WithError(err).Fatal("failed to start discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.WithError(err).Warn("error stopping bot")
	}
	stopUpdater()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("error stopping metrics server")
	}

	if err := redisClient.Close(); err != nil {
		logger.WithError(err).Warn("error closing redis client")
	}

	logger.Info("bot has been shut down")
}
