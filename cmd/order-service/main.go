package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/arplanets/livesight-order-service/internal/config"
	deliveryhttp "github.com/arplanets/livesight-order-service/internal/delivery/http"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/audit"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/kafka"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/metrics"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/migrate"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/orgservice"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres/repository"
	"github.com/arplanets/livesight-order-service/internal/token"
	ordersvc "github.com/arplanets/livesight-order-service/internal/usecase/order"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Metrics
	orderMetrics := metrics.NewOrderMetrics()

	// Database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationsPath, logger.With("component", "migrate")); err != nil {
		log.Fatalf("failed to run migrations: %v\n", err)
	}
	orderRepo := repository.NewDefaultOrderRepository(db, logger.With("component", "order_repo"), orderMetrics.ObserveStoreLatency)

	// Kafka collaborators
	notifier := kafka.NewOrderEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderEventsTopic)
	defer notifier.Close()

	auditSink, err := audit.NewSink(
		cfg.Kafka.Brokers,
		cfg.Kafka.AuditTopic,
		cfg.Audit.QueueSize,
		cfg.Audit.BatchSize,
		time.Duration(cfg.Audit.FlushIntervalSeconds)*time.Second,
		logger.With("component", "audit"),
		orderMetrics.RecordAuditDropped,
	)
	if err != nil {
		log.Fatalf("failed to init audit sink: %v\n", err)
	}
	auditSink.Start()
	defer auditSink.Close()

	// Token manager
	tokens, err := token.NewManager(cfg.AccessToken.PrivateKeyPath, cfg.AccessToken.Issuer, cfg.AccessToken.Audience)
	if err != nil {
		log.Fatalf("failed to init token manager: %v\n", err)
	}

	// Org service ownership checker
	ownership := orgservice.NewHTTPOwnershipChecker(cfg.OrgService.BaseURL)

	// Lifecycle rules
	location, err := time.LoadLocation(cfg.Lifecycle.Timezone)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v\n", cfg.Lifecycle.Timezone, err)
	}
	rules := ordersvc.LifecycleRules{
		Location:     location,
		RedeemWindow: time.Duration(cfg.Lifecycle.RedeemWindowMinutes) * time.Minute,
		StorageTTL:   time.Duration(cfg.Lifecycle.TTLMinutes) * time.Minute,
	}

	uc := ordersvc.NewDefaultOrderUsecase(
		orderRepo,
		ownership,
		notifier,
		auditSink,
		tokens,
		orderMetrics,
		rules,
		logger.With("component", "order_usecase"),
	)

	// TTL pruner
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Lifecycle.PruneSchedule, func() {
		if _, err := uc.PruneExpiredOrders(context.Background()); err != nil {
			logger.Error("prune run failed", "error", err.Error())
		}
	}); err != nil {
		log.Fatalf("failed to schedule pruner: %v\n", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := deliveryhttp.NewOrderHandler(uc, tokens, logger.With("component", "http"))
	router := deliveryhttp.NewRouter(handler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	go func() {
		logger.Info("http server started", "addr", addr)
		if err := router.Start(addr); err != nil {
			logger.Error("http server stopped", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err.Error())
	}
	logger.Info("order service stopped")
}
