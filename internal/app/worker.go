package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go-hrdash/internal/config"
	"go-hrdash/internal/messaging/kafka"
	"go-hrdash/internal/messaging/kafka/producer"
	"go-hrdash/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until the process is signalled.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("the outbox worker requires DB_DRIVER=%s", config.DriverPostgres)
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		logger,
		cfg.Kafka.OutboxPollInterval,
	)

	logger.Info("worker shutting down")
	return nil
}
