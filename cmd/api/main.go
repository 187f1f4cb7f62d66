package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/tradelink-backend/api/controllers"
	"github.com/angelmondragon/tradelink-backend/api/routes"
	"github.com/angelmondragon/tradelink-backend/internal/checkout"
	"github.com/angelmondragon/tradelink-backend/internal/commission"
	"github.com/angelmondragon/tradelink-backend/internal/notifications"
	"github.com/angelmondragon/tradelink-backend/internal/orders"
	"github.com/angelmondragon/tradelink-backend/pkg/config"
	"github.com/angelmondragon/tradelink-backend/pkg/db"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/metrics"
	"github.com/angelmondragon/tradelink-backend/pkg/migrate"
	"github.com/angelmondragon/tradelink-backend/pkg/pubsub"
	"github.com/angelmondragon/tradelink-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "tradelink-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "fatal", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	var sink notifications.Sink
	var pubsubClient *pubsub.Client
	notifRepo := notifications.NewRepository(dbClient.DB())
	if cfg.PubSub.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(ctx, cfg.PubSub, logg)
		if err != nil {
			return err
		}
		defer pubsubClient.Close()
		sink, err = notifications.NewService(notifRepo, pubsubClient.SupplierEventPublisher(), cfg.PubSub, logg)
	} else {
		logg.Warn(ctx, "pubsub project not configured; supplier events are persisted only")
		sink, err = notifications.NewService(notifRepo, nil, cfg.PubSub, logg)
	}
	if err != nil {
		return err
	}

	tierRepo := commission.NewRepository(dbClient.DB())
	commissionSvc, err := commission.NewService(tierRepo, dbClient)
	if err != nil {
		return err
	}

	orderRepo := orders.NewRepository(dbClient.DB())
	orderSvc, err := orders.NewService(orderRepo, sink, checkoutMetrics, logg)
	if err != nil {
		return err
	}

	checkoutSvc, err := checkout.NewService(orderRepo, commissionSvc, dbClient, sink, checkoutMetrics, logg)
	if err != nil {
		return err
	}

	health := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}
	if pubsubClient != nil {
		health["pubsub"] = pubsubClient
	}

	router := routes.New(routes.Deps{
		Logger:        logg,
		Checkout:      checkoutSvc,
		Orders:        orderSvc,
		Commission:    commissionSvc,
		Notifications: notifRepo,
		Idempotency:   redisClient,
		Health:        health,
		Metrics:       registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logg.Info(shutdownCtx, "shutting down")
	return server.Shutdown(shutdownCtx)
}
