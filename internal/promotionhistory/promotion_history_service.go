package promotionhistory

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/dateutil"
	"go-hrdash/internal/shared/money"

	"go.uber.org/zap"
)

//go:generate mockgen -source=promotion_history_service.go -destination=mock/promotion_history_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePromotionHistoryRequest) (PromotionHistoryResponse, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]PromotionHistoryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("promotionhistory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("promotionhistory.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePromotionHistoryRequest) (PromotionHistoryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create promotion history requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", req.EmployeeID),
	)

	history, err := buildHistory(req)
	if err != nil {
		s.logger.Warn("create promotion history invalid input",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return PromotionHistoryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create promotion history begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionHistoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create promotion history employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionHistoryResponse{}, err
	}
	if !exists {
		s.logger.Warn("create promotion history employee not found",
			zap.String("request_id", rid),
			zap.Int64("employee_id", req.EmployeeID),
		)
		return PromotionHistoryResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := qtx.Create(ctx, history); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsAppError(mapped) {
			s.logger.Warn("create promotion history rejected", zap.String("request_id", rid), zap.Error(mapped))
		} else {
			s.logger.Error("create promotion history persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return PromotionHistoryResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create promotion history commit failed", zap.String("request_id", rid), zap.Error(err))
		return PromotionHistoryResponse{}, err
	}

	s.logger.Info("create promotion history success",
		zap.String("request_id", rid),
		zap.Int64("promotion_history_id", history.ID),
		zap.Int64("employee_id", history.EmployeeID),
	)

	return mapToResponse(*history), nil
}

// ListByEmployee answers an empty list for an unknown employee.
func (s *service) ListByEmployee(ctx context.Context, employeeID int64) ([]PromotionHistoryResponse, error) {
	s.logger.Debug("list promotion history requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int64("employee_id", employeeID),
	)

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list promotion history failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func buildHistory(req CreatePromotionHistoryRequest) (*PromotionHistory, error) {
	if req.NewSalary == nil {
		return nil, apperror.RequiredField("new_salary")
	}
	newSalary, err := money.Normalize("new_salary", *req.NewSalary)
	if err != nil {
		return nil, err
	}
	previousSalary, err := money.NormalizePtr("previous_salary", req.PreviousSalary)
	if err != nil {
		return nil, err
	}

	promotionDate, err := dateutil.ParseField("promotion_date", req.PromotionDate)
	if err != nil {
		return nil, err
	}
	effectiveDate, err := dateutil.ParseField("effective_date", req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	return &PromotionHistory{
		EmployeeID:          req.EmployeeID,
		PreviousPosition:    req.PreviousPosition,
		NewPosition:         req.NewPosition,
		PreviousSalary:      previousSalary,
		NewSalary:           newSalary,
		PromotionDate:       promotionDate,
		EffectiveDate:       effectiveDate,
		Notes:               req.Notes,
		PromotionScheduleID: req.PromotionScheduleID,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func mapToResponse(h PromotionHistory) PromotionHistoryResponse {
	return PromotionHistoryResponse{
		ID:                  h.ID,
		EmployeeID:          h.EmployeeID,
		PreviousPosition:    h.PreviousPosition,
		NewPosition:         h.NewPosition,
		PreviousSalary:      money.FloatPtr(h.PreviousSalary),
		NewSalary:           money.Float(h.NewSalary),
		PromotionDate:       dateutil.Format(h.PromotionDate),
		EffectiveDate:       dateutil.Format(h.EffectiveDate),
		Notes:               h.Notes,
		PromotionScheduleID: h.PromotionScheduleID,
		CreatedAt:           dateutil.Format(h.CreatedAt),
	}
}

func mapToListResponse(rows []PromotionHistory) []PromotionHistoryResponse {
	resp := make([]PromotionHistoryResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapToResponse(row))
	}
	return resp
}
