package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_sessions/internal/app"
	"github.com/Freeeeeet/tutor_sessions/internal/config"
	"github.com/Freeeeeet/tutor_sessions/internal/controller/api"
	"github.com/Freeeeeet/tutor_sessions/internal/notify"
	"github.com/Freeeeeet/tutor_sessions/internal/repository"
	"github.com/Freeeeeet/tutor_sessions/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting tutor sessions service",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("default_timezone", cfg.DefaultTimezone),
		zap.Bool("compensate_on_failure", cfg.CompensateOnFailure))

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool, logger)

	var opts []service.SubmitterOption
	if cfg.CompensateOnFailure {
		opts = append(opts, service.WithCompensation(sessionRepo))
	}
	submitter := service.NewSubmitter(sessionRepo, logger, opts...)

	var notifier service.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			return err
		}
		notifier = tg
	} else {
		logger.Info("TELEGRAM_TOKEN is empty, tutor notifications disabled")
	}

	sessionService := service.NewSessionService(
		userRepo,
		availabilityRepo,
		sessionRepo,
		submitter,
		notifier,
		cfg.DefaultTimezone,
		logger,
	)
	userService := service.NewUserService(userRepo, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(sessionService, userService, logger)
	router := api.NewRouter(handler, logger)

	return app.NewServer(cfg.HTTPAddr, router, logger).Run(ctx)
}
