package salaryadjustment

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "go-hrdash/internal/employee/errors"
	salaryadjustmenterrors "go-hrdash/internal/salaryadjustment/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/dateutil"
	"go-hrdash/internal/shared/money"

	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_adjustment_service.go -destination=mock/salary_adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryAdjustmentRequest) (SalaryAdjustmentResponse, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]SalaryAdjustmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryadjustment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryadjustment.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSalaryAdjustmentRequest) (SalaryAdjustmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create salary adjustment requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("adjustment_type", req.AdjustmentType),
	)

	adjustment, err := buildAdjustment(req)
	if err != nil {
		s.logger.Warn("create salary adjustment invalid input",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return SalaryAdjustmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary adjustment begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryAdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create salary adjustment employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryAdjustmentResponse{}, err
	}
	if !exists {
		s.logger.Warn("create salary adjustment employee not found",
			zap.String("request_id", rid),
			zap.Int64("employee_id", req.EmployeeID),
		)
		return SalaryAdjustmentResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := qtx.Create(ctx, adjustment); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsAppError(mapped) {
			s.logger.Warn("create salary adjustment rejected", zap.String("request_id", rid), zap.Error(mapped))
		} else {
			s.logger.Error("create salary adjustment persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return SalaryAdjustmentResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary adjustment commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryAdjustmentResponse{}, err
	}

	s.logger.Info("create salary adjustment success",
		zap.String("request_id", rid),
		zap.Int64("salary_adjustment_id", adjustment.ID),
		zap.Int64("employee_id", adjustment.EmployeeID),
	)

	return mapToResponse(*adjustment), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID int64) ([]SalaryAdjustmentResponse, error) {
	s.logger.Debug("list salary adjustments requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int64("employee_id", employeeID),
	)

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list salary adjustments failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func buildAdjustment(req CreateSalaryAdjustmentRequest) (*SalaryAdjustment, error) {
	adjustmentType := AdjustmentType(req.AdjustmentType)
	if !adjustmentType.Valid() {
		return nil, salaryadjustmenterrors.ErrInvalidAdjustmentType
	}
	if req.PreviousSalary == nil {
		return nil, apperror.RequiredField("previous_salary")
	}
	if req.NewSalary == nil {
		return nil, apperror.RequiredField("new_salary")
	}

	previousSalary, err := money.Normalize("previous_salary", *req.PreviousSalary)
	if err != nil {
		return nil, err
	}
	newSalary, err := money.Normalize("new_salary", *req.NewSalary)
	if err != nil {
		return nil, err
	}
	percentage, err := resolvePercentage(req.AdjustmentPercentage, previousSalary, newSalary)
	if err != nil {
		return nil, err
	}

	effectiveDate, err := dateutil.ParseField("effective_date", req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	return &SalaryAdjustment{
		EmployeeID:           req.EmployeeID,
		PreviousSalary:       previousSalary,
		NewSalary:            newSalary,
		AdjustmentType:       adjustmentType,
		AdjustmentPercentage: percentage,
		EffectiveDate:        effectiveDate,
		Notes:                req.Notes,
		PromotionScheduleID:  req.PromotionScheduleID,
		CreatedAt:            time.Now().UTC(),
	}, nil
}

func mapToResponse(a SalaryAdjustment) SalaryAdjustmentResponse {
	return SalaryAdjustmentResponse{
		ID:                   a.ID,
		EmployeeID:           a.EmployeeID,
		PreviousSalary:       money.Float(a.PreviousSalary),
		NewSalary:            money.Float(a.NewSalary),
		AdjustmentType:       string(a.AdjustmentType),
		AdjustmentPercentage: money.FloatPtr(a.AdjustmentPercentage),
		EffectiveDate:        dateutil.Format(a.EffectiveDate),
		Notes:                a.Notes,
		PromotionScheduleID:  a.PromotionScheduleID,
		CreatedAt:            dateutil.Format(a.CreatedAt),
	}
}

func mapToListResponse(rows []SalaryAdjustment) []SalaryAdjustmentResponse {
	resp := make([]SalaryAdjustmentResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapToResponse(row))
	}
	return resp
}
