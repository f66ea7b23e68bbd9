package promotionschedule

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/events"
	"go-hrdash/internal/messaging/kafka"
	promotionscheduleerrors "go-hrdash/internal/promotionschedule/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/dateutil"
	"go-hrdash/internal/shared/money"

	"go.uber.org/zap"
)

const DefaultDaysAhead = 30

//go:generate mockgen -source=promotion_schedule_service.go -destination=mock/promotion_schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePromotionScheduleRequest) (PromotionScheduleResponse, error)
	Update(ctx context.Context, req UpdatePromotionScheduleRequest) (PromotionScheduleResponse, error)
	ListAll(ctx context.Context) ([]PromotionScheduleResponse, error)
	ListUpcoming(ctx context.Context, daysAhead int) ([]PromotionScheduleResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

// NewServiceWithOutbox records a status_changed event in the same transaction
// as every status change.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("promotionschedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("promotionschedule.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePromotionScheduleRequest) (PromotionScheduleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create promotion schedule requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", req.EmployeeID),
	)

	schedule, err := s.buildSchedule(req)
	if err != nil {
		s.logger.Warn("create promotion schedule invalid input",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return PromotionScheduleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create promotion schedule begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create promotion schedule employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionScheduleResponse{}, err
	}
	if !exists {
		s.logger.Warn("create promotion schedule employee not found",
			zap.String("request_id", rid),
			zap.Int64("employee_id", req.EmployeeID),
		)
		return PromotionScheduleResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := qtx.Create(ctx, schedule); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsAppError(mapped) {
			s.logger.Warn("create promotion schedule rejected", zap.String("request_id", rid), zap.Error(mapped))
		} else {
			s.logger.Error("create promotion schedule persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return PromotionScheduleResponse{}, mapped
	}

	stored, err := qtx.FindByID(ctx, schedule.ID)
	if err != nil {
		s.logger.Error("create promotion schedule reload failed",
			zap.String("request_id", rid),
			zap.Int64("promotion_schedule_id", schedule.ID),
			zap.Error(err),
		)
		return PromotionScheduleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create promotion schedule commit failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionScheduleResponse{}, err
	}

	s.logger.Info("create promotion schedule success",
		zap.String("request_id", rid),
		zap.Int64("promotion_schedule_id", stored.ID),
		zap.String("status", string(stored.Status)),
	)

	return mapToResponse(*stored), nil
}

// Update merges the supplied fields onto the stored row. updated_at always
// advances, even when nothing else was sent.
func (s *service) Update(ctx context.Context, req UpdatePromotionScheduleRequest) (PromotionScheduleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update promotion schedule requested",
		zap.String("request_id", rid),
		zap.Int64("promotion_schedule_id", req.ID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update promotion schedule begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	schedule, err := qtx.FindByID(ctx, req.ID)
	if err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsAppError(mapped) {
			s.logger.Warn("update promotion schedule not found",
				zap.String("request_id", rid),
				zap.Int64("promotion_schedule_id", req.ID),
			)
		} else {
			s.logger.Error("update promotion schedule fetch failed", zap.String("request_id", rid), zap.Error(err))
		}
		return PromotionScheduleResponse{}, mapped
	}

	previousStatus := schedule.Status
	if err := applyUpdate(schedule, req); err != nil {
		s.logger.Warn("update promotion schedule rejected",
			zap.String("request_id", rid),
			zap.Int64("promotion_schedule_id", req.ID),
			zap.Error(err),
		)
		return PromotionScheduleResponse{}, err
	}
	now := s.now().UTC()
	schedule.UpdatedAt = dateutil.Tick(now, schedule.UpdatedAt)

	if err := qtx.Update(ctx, schedule); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsAppError(mapped) {
			s.logger.Warn("update promotion schedule rejected", zap.String("request_id", rid), zap.Error(mapped))
		} else {
			s.logger.Error("update promotion schedule persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return PromotionScheduleResponse{}, mapped
	}

	if s.outbox != nil && schedule.Status != previousStatus {
		if err := s.recordStatusChange(ctx, tx, schedule, previousStatus, now); err != nil {
			s.logger.Error("update promotion schedule outbox persist failed",
				zap.String("request_id", rid),
				zap.Int64("promotion_schedule_id", schedule.ID),
				zap.Error(err),
			)
			return PromotionScheduleResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update promotion schedule commit failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionScheduleResponse{}, err
	}

	s.logger.Info("update promotion schedule success",
		zap.String("request_id", rid),
		zap.Int64("promotion_schedule_id", schedule.ID),
		zap.String("previous_status", string(previousStatus)),
		zap.String("status", string(schedule.Status)),
	)

	return mapToResponse(*schedule), nil
}

func (s *service) ListAll(ctx context.Context) ([]PromotionScheduleResponse, error) {
	s.logger.Debug("list promotion schedules requested", zap.String("request_id", contextutil.GetRequestID(ctx)))

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list promotion schedules failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

// ListUpcoming returns open schedules due within daysAhead days from now,
// overdue ones included.
func (s *service) ListUpcoming(ctx context.Context, daysAhead int) ([]PromotionScheduleResponse, error) {
	if daysAhead <= 0 {
		return nil, apperror.InvalidField("days_ahead")
	}

	cutoff := s.now().UTC().AddDate(0, 0, daysAhead)
	s.logger.Debug("list upcoming promotions requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("days_ahead", daysAhead),
		zap.Time("cutoff", cutoff),
	)

	rows, err := s.repo.FindDueBy(ctx, cutoff, OpenStatuses)
	if err != nil {
		s.logger.Error("list upcoming promotions failed", zap.Int("days_ahead", daysAhead), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) recordStatusChange(
	ctx context.Context,
	tx *sql.Tx,
	schedule *PromotionSchedule,
	previous Status,
	occurredAt time.Time,
) error {
	event, err := kafka.NewOutboxEvent(ctx,
		"promotion_schedule",
		strconv.FormatInt(schedule.ID, 10),
		events.PromotionScheduleStatusChanged,
		events.PromotionScheduleTopic,
		events.PromotionScheduleStatusChangedEvent{
			EventType:       events.PromotionScheduleStatusChanged,
			RequestID:       contextutil.GetRequestID(ctx),
			ChangedBy:       contextutil.GetUserID(ctx),
			ScheduleID:      schedule.ID,
			EmployeeID:      schedule.EmployeeID,
			PreviousStatus:  string(previous),
			Status:          string(schedule.Status),
			CurrentPosition: schedule.CurrentPosition,
			TargetPosition:  schedule.TargetPosition,
			CurrentSalary:   schedule.CurrentSalary,
			TargetSalary:    schedule.TargetSalary,
			ScheduledDate:   schedule.ScheduledDate,
			Notes:           schedule.Notes,
			OccurredAt:      occurredAt,
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) buildSchedule(req CreatePromotionScheduleRequest) (*PromotionSchedule, error) {
	if req.CurrentSalary == nil {
		return nil, apperror.RequiredField("current_salary")
	}
	if req.TargetSalary == nil {
		return nil, apperror.RequiredField("target_salary")
	}

	status := StatusPending
	if req.Status != "" {
		status = Status(req.Status)
		if !status.Valid() {
			return nil, promotionscheduleerrors.ErrInvalidStatus
		}
	}

	currentSalary, err := money.Normalize("current_salary", *req.CurrentSalary)
	if err != nil {
		return nil, err
	}
	targetSalary, err := money.Normalize("target_salary", *req.TargetSalary)
	if err != nil {
		return nil, err
	}
	scheduledDate, err := dateutil.ParseField("scheduled_date", req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &PromotionSchedule{
		EmployeeID:      req.EmployeeID,
		CurrentPosition: req.CurrentPosition,
		TargetPosition:  req.TargetPosition,
		CurrentSalary:   currentSalary,
		TargetSalary:    targetSalary,
		ScheduledDate:   scheduledDate,
		Status:          status,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// applyUpdate validates every supplied field before touching schedule, so a
// rejected request leaves it unchanged.
func applyUpdate(schedule *PromotionSchedule, req UpdatePromotionScheduleRequest) error {
	var (
		targetSalary  = schedule.TargetSalary
		scheduledDate = schedule.ScheduledDate
		status        = schedule.Status
		err           error
	)

	if req.TargetSalary != nil {
		if targetSalary, err = money.Normalize("target_salary", *req.TargetSalary); err != nil {
			return err
		}
	}
	if req.ScheduledDate != nil {
		if scheduledDate, err = dateutil.ParseField("scheduled_date", *req.ScheduledDate); err != nil {
			return err
		}
	}
	if req.Status != nil {
		status = Status(*req.Status)
		if err := checkStatusTransition(schedule.Status, status); err != nil {
			return err
		}
	}

	if req.TargetPosition != nil {
		schedule.TargetPosition = *req.TargetPosition
	}
	schedule.TargetSalary = targetSalary
	schedule.ScheduledDate = scheduledDate
	schedule.Status = status
	req.Notes.ApplyTo(&schedule.Notes)
	return nil
}

func mapToResponse(ps PromotionSchedule) PromotionScheduleResponse {
	resp := PromotionScheduleResponse{
		ID:              ps.ID,
		EmployeeID:      ps.EmployeeID,
		CurrentPosition: ps.CurrentPosition,
		TargetPosition:  ps.TargetPosition,
		CurrentSalary:   money.Float(ps.CurrentSalary),
		TargetSalary:    money.Float(ps.TargetSalary),
		ScheduledDate:   dateutil.Format(ps.ScheduledDate),
		Status:          string(ps.Status),
		Notes:           ps.Notes,
		CreatedAt:       dateutil.Format(ps.CreatedAt),
		UpdatedAt:       dateutil.Format(ps.UpdatedAt),
	}
	if ps.Employee != nil {
		resp.EmployeeName = ps.Employee.Name
	}
	return resp
}

func mapToListResponse(rows []PromotionSchedule) []PromotionScheduleResponse {
	resp := make([]PromotionScheduleResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapToResponse(row))
	}
	return resp
}
