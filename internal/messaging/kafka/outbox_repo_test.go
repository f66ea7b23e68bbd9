package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-hrdash/internal/messaging/kafka"
	"go-hrdash/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            "evt-1",
		RequestID:     "REQ-1",
		AggregateType: "employee",
		AggregateID:   "7",
		EventType:     "employee_created",
		Topic:         "hr.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":7}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "REQ-9")

	event, err := kafka.NewOutboxEvent(ctx, "employee", "7", "employee_created", "hr.employee.lifecycle.v1",
		map[string]any{"employee_id": 7})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "REQ-9", event.RequestID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, float64(7), payload["employee_id"])
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event := pendingEvent()

	t.Run("inside transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
				event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)
		assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid event never reaches the database", func(t *testing.T) {
		bad := event
		bad.Topic = ""

		err := repo.Create(context.Background(), bad)

		assert.EqualError(t, err, "outbox topic is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic",
		"payload", "status", "retry_count", "next_retry_at",
	}).
		AddRow("evt-1", "REQ-1", "employee", "7", "employee_created", "hr.employee.lifecycle.v1",
			[]byte(`{}`), kafka.OutboxStatusPending, 0, now).
		AddRow("evt-2", "", "promotion_schedule", "3", "promotion_schedule.status_changed", "hr.promotion.schedule.v1",
			[]byte(`{}`), kafka.OutboxStatusFailed, 2, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[1].ID)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("evt-2", kafka.OutboxStatusFailed, "broker down").
		WillReturnError(errors.New("db down"))

	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.EqualError(t, repo.MarkFailed(context.Background(), "evt-2", "broker down"), "db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}
