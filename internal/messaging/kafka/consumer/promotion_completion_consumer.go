package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-hrdash/internal/events"
	"go-hrdash/internal/promotionhistory"
	promotionhistoryerrors "go-hrdash/internal/promotionhistory/errors"
	"go-hrdash/internal/salaryadjustment"
	salaryadjustmenterrors "go-hrdash/internal/salaryadjustment/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/dateutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PromotionCompletionHandler books the ledger rows of a promotion schedule
// once it reaches completed: one promotion history entry and one salary
// adjustment, both linked to the schedule so redelivery is harmless.
type PromotionCompletionHandler struct {
	history     promotionhistory.Service
	adjustments salaryadjustment.Service
	logger      *zap.Logger
}

func NewPromotionCompletionHandler(
	history promotionhistory.Service,
	adjustments salaryadjustment.Service,
	logger ...*zap.Logger,
) *PromotionCompletionHandler {
	l := zap.L().Named("kafka.consumer.promotion_completion")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.consumer.promotion_completion")
	}
	return &PromotionCompletionHandler{history: history, adjustments: adjustments, logger: l}
}

func (h *PromotionCompletionHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	var event events.PromotionScheduleStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.EventType != events.PromotionScheduleStatusChanged || event.Status != "completed" {
		h.logger.Debug("ignoring schedule event",
			zap.String("event_type", event.EventType),
			zap.String("status", event.Status),
			zap.Int64("promotion_schedule_id", event.ScheduleID),
		)
		return nil
	}
	if event.ScheduleID <= 0 || event.EmployeeID <= 0 {
		return fmt.Errorf("%w: schedule and employee ids are required", ErrMalformedEvent)
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	scheduleID := event.ScheduleID
	previousPosition := event.CurrentPosition
	previousSalary := event.CurrentSalary
	newSalary := event.TargetSalary
	effectiveDate := dateutil.Format(event.ScheduledDate)

	_, err := h.history.Create(ctx, promotionhistory.CreatePromotionHistoryRequest{
		EmployeeID:          event.EmployeeID,
		PreviousPosition:    &previousPosition,
		NewPosition:         event.TargetPosition,
		PreviousSalary:      &previousSalary,
		NewSalary:           &newSalary,
		PromotionDate:       dateutil.Format(event.OccurredAt),
		EffectiveDate:       effectiveDate,
		Notes:               event.Notes,
		PromotionScheduleID: &scheduleID,
	})
	switch {
	case errors.Is(err, promotionhistoryerrors.ErrScheduleAlreadyRecorded):
		h.logger.Warn("promotion history already recorded for schedule, skipping",
			zap.Int64("promotion_schedule_id", scheduleID),
		)
	case err != nil:
		return ledgerError("promotion history", scheduleID, err)
	}

	_, err = h.adjustments.Create(ctx, salaryadjustment.CreateSalaryAdjustmentRequest{
		EmployeeID:          event.EmployeeID,
		PreviousSalary:      &previousSalary,
		NewSalary:           &newSalary,
		AdjustmentType:      string(salaryadjustment.TypePromotion),
		EffectiveDate:       effectiveDate,
		Notes:               event.Notes,
		PromotionScheduleID: &scheduleID,
	})
	switch {
	case errors.Is(err, salaryadjustmenterrors.ErrScheduleAlreadyRecorded):
		h.logger.Warn("salary adjustment already recorded for schedule, skipping",
			zap.Int64("promotion_schedule_id", scheduleID),
		)
	case err != nil:
		return ledgerError("salary adjustment", scheduleID, err)
	}

	h.logger.Info("promotion completion recorded",
		zap.String("request_id", event.RequestID),
		zap.Int64("promotion_schedule_id", scheduleID),
		zap.Int64("employee_id", event.EmployeeID),
	)
	return nil
}

// ledgerError classifies a failed write. Client errors (unknown employee,
// out of range values) will fail again on redelivery, so they are dropped.
func ledgerError(what string, scheduleID int64, err error) error {
	if apperror.IsAppError(err) {
		return fmt.Errorf("%w: record %s for schedule %d: %v", ErrMalformedEvent, what, scheduleID, err)
	}
	return fmt.Errorf("record %s for schedule %d: %w", what, scheduleID, err)
}
