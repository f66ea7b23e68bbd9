package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go-hrdash/internal/config"
	"go-hrdash/internal/events"
	"go-hrdash/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer books ledger rows for completed promotion schedules until the
// process is signalled.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	infra, err := OpenInfrastructure(cfg)
	if err != nil {
		return err
	}
	defer infra.Close()

	services := NewServices(infra, zap.L())
	handler := consumer.NewPromotionCompletionHandler(services.PromotionHistory, services.SalaryAdjustment, zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.PromotionScheduleTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.Consume(ctx, reader, handler, logger, "promotion_completion")

	logger.Info("consumer shutting down")
	return nil
}
