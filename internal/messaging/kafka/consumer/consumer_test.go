package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/events"
	"go-hrdash/internal/messaging/kafka/consumer"
	"go-hrdash/internal/promotionhistory"
	promotionhistoryerrors "go-hrdash/internal/promotionhistory/errors"
	"go-hrdash/internal/salaryadjustment"
	"go-hrdash/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeHistoryService struct {
	CreateFn func(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error)
}

func (f *fakeHistoryService) Create(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeHistoryService) ListByEmployee(ctx context.Context, employeeID int64) ([]promotionhistory.PromotionHistoryResponse, error) {
	return nil, nil
}

type fakeAdjustmentService struct {
	CreateFn func(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error)
}

func (f *fakeAdjustmentService) Create(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeAdjustmentService) ListByEmployee(ctx context.Context, employeeID int64) ([]salaryadjustment.SalaryAdjustmentResponse, error) {
	return nil, nil
}

func completedEvent(t *testing.T) kafkago.Message {
	t.Helper()
	notes := "approved by board"
	body, err := json.Marshal(events.PromotionScheduleStatusChangedEvent{
		EventType:       events.PromotionScheduleStatusChanged,
		RequestID:       "REQ-7",
		ScheduleID:      12,
		EmployeeID:      3,
		PreviousStatus:  "approved",
		Status:          "completed",
		CurrentPosition: "Analyst",
		TargetPosition:  "Senior Analyst",
		CurrentSalary:   decimal.RequireFromString("8000000"),
		TargetSalary:    decimal.RequireFromString("8800000"),
		ScheduledDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Notes:           &notes,
		OccurredAt:      time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.PromotionScheduleTopic, Value: body}
}

func TestPromotionCompletionHandler_Handle(t *testing.T) {
	t.Run("completed schedule books both ledger rows", func(t *testing.T) {
		history := &fakeHistoryService{
			CreateFn: func(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error) {
				assert.Equal(t, "REQ-7", contextutil.GetRequestID(ctx))
				assert.Equal(t, int64(3), req.EmployeeID)
				assert.Equal(t, "Analyst", *req.PreviousPosition)
				assert.Equal(t, "Senior Analyst", req.NewPosition)
				assert.Equal(t, "2026-05-02T09:00:00Z", req.PromotionDate)
				assert.Equal(t, "2026-05-01T00:00:00Z", req.EffectiveDate)
				assert.Equal(t, int64(12), *req.PromotionScheduleID)
				return promotionhistory.PromotionHistoryResponse{ID: 1}, nil
			},
		}
		adjustments := &fakeAdjustmentService{
			CreateFn: func(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error) {
				assert.Equal(t, "promotion", req.AdjustmentType)
				assert.Nil(t, req.AdjustmentPercentage)
				assert.True(t, decimal.RequireFromString("8800000").Equal(*req.NewSalary))
				assert.Equal(t, int64(12), *req.PromotionScheduleID)
				return salaryadjustment.SalaryAdjustmentResponse{ID: 1}, nil
			},
		}

		err := consumer.NewPromotionCompletionHandler(history, adjustments).Handle(context.Background(), completedEvent(t))

		assert.NoError(t, err)
	})

	t.Run("redelivery is skipped", func(t *testing.T) {
		history := &fakeHistoryService{
			CreateFn: func(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error) {
				return promotionhistory.PromotionHistoryResponse{}, promotionhistoryerrors.ErrScheduleAlreadyRecorded
			},
		}
		adjustmentCalled := false
		adjustments := &fakeAdjustmentService{
			CreateFn: func(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error) {
				adjustmentCalled = true
				return salaryadjustment.SalaryAdjustmentResponse{}, nil
			},
		}

		err := consumer.NewPromotionCompletionHandler(history, adjustments).Handle(context.Background(), completedEvent(t))

		assert.NoError(t, err)
		assert.True(t, adjustmentCalled)
	})

	t.Run("other statuses are ignored", func(t *testing.T) {
		body, _ := json.Marshal(events.PromotionScheduleStatusChangedEvent{
			EventType:  events.PromotionScheduleStatusChanged,
			ScheduleID: 1,
			EmployeeID: 1,
			Status:     "approved",
		})

		err := consumer.NewPromotionCompletionHandler(&fakeHistoryService{}, &fakeAdjustmentService{}).
			Handle(context.Background(), kafkago.Message{Value: body})

		assert.NoError(t, err)
	})

	t.Run("undecodable payload is malformed", func(t *testing.T) {
		err := consumer.NewPromotionCompletionHandler(&fakeHistoryService{}, &fakeAdjustmentService{}).
			Handle(context.Background(), kafkago.Message{Value: []byte("{")})

		assert.ErrorIs(t, err, consumer.ErrMalformedEvent)
	})

	t.Run("unknown employee is dropped", func(t *testing.T) {
		history := &fakeHistoryService{
			CreateFn: func(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error) {
				return promotionhistory.PromotionHistoryResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		err := consumer.NewPromotionCompletionHandler(history, &fakeAdjustmentService{}).Handle(context.Background(), completedEvent(t))

		assert.ErrorIs(t, err, consumer.ErrMalformedEvent)
	})

	t.Run("store failure is retried", func(t *testing.T) {
		history := &fakeHistoryService{
			CreateFn: func(ctx context.Context, req promotionhistory.CreatePromotionHistoryRequest) (promotionhistory.PromotionHistoryResponse, error) {
				return promotionhistory.PromotionHistoryResponse{}, errors.New("connection refused")
			},
		}

		err := consumer.NewPromotionCompletionHandler(history, &fakeAdjustmentService{}).Handle(context.Background(), completedEvent(t))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, consumer.ErrMalformedEvent)
	})
}

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	fetchErrs []error
	fetched   []int64
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		r.mu.Unlock()
		return kafkago.Message{}, err
	}
	if len(r.messages) == 0 {
		r.mu.Unlock()
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	r.fetched = append(r.fetched, msg.Offset)
	r.mu.Unlock()
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type handlerFunc func(ctx context.Context, msg kafkago.Message) error

func (f handlerFunc) Handle(ctx context.Context, msg kafkago.Message) error { return f(ctx, msg) }

func TestConsume(t *testing.T) {
	t.Cleanup(consumer.SetBackoff(time.Millisecond, 4*time.Millisecond))

	t.Run("failed message is retried before the next fetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{
			messages: []kafkago.Message{{Offset: 10}, {Offset: 11}},
			cancel:   cancel,
		}
		var handled []int64
		var fetchedAtRetry []int64
		failures := 1
		handler := handlerFunc(func(ctx context.Context, msg kafkago.Message) error {
			handled = append(handled, msg.Offset)
			if msg.Offset == 10 && failures > 0 {
				failures--
				return errors.New("db connection refused")
			}
			if msg.Offset == 10 {
				reader.mu.Lock()
				fetchedAtRetry = append([]int64(nil), reader.fetched...)
				reader.mu.Unlock()
			}
			return nil
		})

		consumer.Consume(ctx, reader, handler, zap.NewNop(), "test")

		assert.Equal(t, []int64{10, 10, 11}, handled)
		assert.Equal(t, []int64{10}, fetchedAtRetry)
		assert.Equal(t, []int64{10, 11}, reader.fetched)
		assert.Equal(t, []int64{10, 11}, reader.committed)
	})

	t.Run("malformed message is committed without retry", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{
			messages: []kafkago.Message{{Offset: 1}, {Offset: 2}},
			cancel:   cancel,
		}
		var handled []int64
		handler := handlerFunc(func(ctx context.Context, msg kafkago.Message) error {
			handled = append(handled, msg.Offset)
			if msg.Offset == 1 {
				return consumer.ErrMalformedEvent
			}
			return nil
		})

		consumer.Consume(ctx, reader, handler, zap.NewNop(), "test")

		assert.Equal(t, []int64{1, 2}, handled)
		assert.Equal(t, []int64{1, 2}, reader.committed)
	})

	t.Run("cancel during retry leaves the message uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{
			messages: []kafkago.Message{{Offset: 4}, {Offset: 5}},
			cancel:   cancel,
		}
		attempts := 0
		handler := handlerFunc(func(ctx context.Context, msg kafkago.Message) error {
			attempts++
			if attempts == 3 {
				cancel()
			}
			return errors.New("db connection refused")
		})

		consumer.Consume(ctx, reader, handler, zap.NewNop(), "test")

		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int64{4}, reader.fetched)
		assert.Empty(t, reader.committed)
	})

	t.Run("fetch errors back off before the next fetch", func(t *testing.T) {
		t.Cleanup(consumer.SetBackoff(5*time.Millisecond, 20*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{
			fetchErrs: []error{errors.New("broker unavailable"), errors.New("broker unavailable")},
			messages:  []kafkago.Message{{Offset: 7}},
			cancel:    cancel,
		}
		handler := handlerFunc(func(ctx context.Context, msg kafkago.Message) error { return nil })

		start := time.Now()
		consumer.Consume(ctx, reader, handler, zap.NewNop(), "test")

		// 5ms then 10ms
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
		assert.Equal(t, []int64{7}, reader.committed)
	})
}
