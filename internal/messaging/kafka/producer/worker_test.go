package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrdash/internal/messaging/kafka"
	kafkaMock "go-hrdash/internal/messaging/kafka/mock"
	"go-hrdash/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	writeFn  func(msg kafkago.Message) error
	messages []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, msg := range msgs {
		if f.writeFn != nil {
			if err := f.writeFn(msg); err != nil {
				return err
			}
		}
		f.messages = append(f.messages, msg)
	}
	return nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	events := []kafka.OutboxEvent{
		{ID: "evt-1", RequestID: "REQ-1", AggregateType: "employee", AggregateID: "7", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)},
		{ID: "evt-2", AggregateType: "promotion_schedule", AggregateID: "3", EventType: "promotion_schedule.status_changed", Topic: "hr.promotion.schedule.v1", Payload: []byte(`{}`)},
	}

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return(events, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, writer.messages, 2)
		assert.Equal(t, "7", string(writer.messages[0].Key))
		assert.Equal(t, "hr.employee.lifecycle.v1", writer.messages[0].Topic)
		assert.Equal(t, "employee_created", header(writer.messages[0], "event_type"))
		assert.Equal(t, "REQ-1", header(writer.messages[0], "request_id"))
		assert.Empty(t, header(writer.messages[1], "request_id"))
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{writeFn: func(msg kafkago.Message) error {
			if msg.Topic == "hr.employee.lifecycle.v1" {
				return errors.New("broker unavailable")
			}
			return nil
		}}

		repo.EXPECT().ListPending(ctx, 50).Return(events, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
		assert.Zero(t, sent)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()

	cancel()
	<-done
}
