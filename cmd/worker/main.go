package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/careerone/portfolio/adapters/event"
	"github.com/careerone/portfolio/adapters/persistence"
	activityUC "github.com/careerone/portfolio/internal/application/usecase/activity"
	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting Careerone Portfolio Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs kafka.brokers", nil)
	}

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	if err := persistence.RunMigrations(cfg.DB.Migrations, cfg.DB.DSN, appLogger); err != nil {
		appLogger.Fatal("Cannot migrate database", err)
	}

	// Worker Use Case
	activityUseCase := activityUC.NewActivityUseCase(persistence.NewPostgresActivityRepo(dbPool, appLogger), appLogger)

	// Kafka Consumer
	activityConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.ActivityTopic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer activityConsumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.ActivityTopic), zap.String("group", cfg.Kafka.GroupID))

	err = event.ConsumeActivities(ctx, activityConsumer,
		func(ctx context.Context, a activity.Activity) error {
			appLogger.Debug("Recording activity", zap.String("kind", a.Kind), zap.String("id", a.ID.String()))
			return activityUseCase.ExecuteRecord(ctx, a)
		},
		func(err error) {
			appLogger.Error("Activity event failed", err)
		},
	)
	if err != nil {
		appLogger.Error("Consumer stopped", err)
	}
	appLogger.Info("Worker exited")
}
