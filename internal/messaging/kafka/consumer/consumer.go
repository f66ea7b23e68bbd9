package consumer

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers rely on.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ErrMalformedEvent marks a message that can never be processed. It is
// committed and dropped instead of being retried.
var ErrMalformedEvent = errors.New("malformed event")

type MessageHandler interface {
	Handle(ctx context.Context, msg kafkago.Message) error
}

var (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Consume fetches messages until ctx is cancelled. A message is committed once
// handled or when it is malformed. Any other failure retries the same message
// with back-off; commits are cumulative per partition, so moving past it would
// acknowledge it.
func Consume(ctx context.Context, reader MessageReader, handler MessageHandler, logger *zap.Logger, name string) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")
	defer log.Info("consumer stopped")

	fetchDelay := minBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("fetch message failed", zap.Duration("retry_in", fetchDelay), zap.Error(err))
			if !sleep(ctx, fetchDelay) {
				return
			}
			fetchDelay = nextBackoff(fetchDelay)
			continue
		}
		fetchDelay = minBackoff

		if !handleUntilDone(ctx, log, handler, msg) {
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handleUntilDone reports false only when ctx ends before msg was settled.
func handleUntilDone(ctx context.Context, log *zap.Logger, handler MessageHandler, msg kafkago.Message) bool {
	delay := minBackoff
	for attempt := 1; ; attempt++ {
		err := handler.Handle(ctx, msg)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrMalformedEvent) {
			log.Warn("dropping malformed message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return true
		}

		log.Error("handle message failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !sleep(ctx, delay) {
			return false
		}
		delay = nextBackoff(delay)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
