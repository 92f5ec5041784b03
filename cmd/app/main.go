package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	redislock "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	locker, closeRedis := newOrderLocker(config, logger)
	defer closeRedis()

	app := cmd.NewCompositionRoot(config, gormDB, locker, logger)

	if config.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(config.RabbitMQURL, config.OrderEventsExchange)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		defer func() { _ = publisher.Close() }()

		jobManager, err := app.CreateJobManager(publisher)
		if err != nil {
			log.Fatalf("Error creating jobs: %v", err)
		}
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	} else {
		logger.Warn("RABBITMQ_URL is not set, domain events stay in the outbox")
	}

	startWebServer(app, config, logger)
}

func newOrderLocker(config cmd.Config, logger *slog.Logger) (ports.OrderLocker, func()) {
	if config.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set, per-order locking is disabled")
		return nil, func() {}
	}

	client := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr, Password: config.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}

	locker, err := redislock.NewOrderLocker(client, config.OrderLockTTL, config.OrderLockWait)
	if err != nil {
		log.Fatalf("Error creating order locker: %v", err)
	}
	return locker, func() { _ = client.Close() }
}

func startWebServer(app cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	if err := httpin.Register(e, app.CreateHTTPServer(), []byte(config.JWTSecret)); err != nil {
		log.Fatalf("Error registering routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
