package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"go-hrdash/internal/events"
	"go-hrdash/internal/messaging/kafka"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/dateutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeesCacheKey = "employees:all"
	employeesCacheTTL = 2 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (*EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger

	// cacheGen is bumped on every invalidation; a load that started under an
	// older generation must not write its result back.
	cacheGen atomic.Uint64
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeID),
		zap.String("email", req.Email),
	)

	hireDate, err := dateutil.ParseField("hire_date", req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("request_id", rid),
			zap.String("hire_date", req.HireDate),
		)
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	empl := &Employee{
		Name:         req.Name,
		EmployeeCode: req.EmployeeID,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		HireDate:     hireDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if !apperror.IsAppError(mapped) {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.Error(mapped))
		}
		return EmployeeResponse{}, mapped
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(ctx,
			"employee",
			strconv.FormatInt(empl.ID, 10),
			events.EmployeeCreatedType,
			events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:    events.EmployeeCreatedType,
				RequestID:    rid,
				EmployeeID:   empl.ID,
				EmployeeCode: empl.EmployeeCode,
				Department:   empl.Department,
				Position:     empl.Position,
				OccurredAt:   now,
			},
		)
		if err != nil {
			s.logger.Error("create employee build outbox event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("request_id", rid),
				zap.Int64("employee_id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("request_id", contextutil.GetRequestID(ctx)))

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeesCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeesCacheKey, func() (interface{}, error) {
		// shared by every waiter, so it must outlive the caller that started it
		ctx := context.WithoutCancel(ctx)
		gen := s.cacheGen.Load()

		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil && s.cacheGen.Load() == gen {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeesCacheKey, payload, employeesCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employees failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// GetByID answers nil, nil when the employee does not exist.
func (s *service) GetByID(ctx context.Context, id int64) (*EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int64("employee_id", id),
	)

	empl, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Int64("employee_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := mapToResponse(*empl)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", req.ID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, req.ID)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", req.ID),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Department != nil {
		empl.Department = *req.Department
	}
	if req.Position != nil {
		empl.Position = *req.Position
	}
	empl.UpdatedAt = dateutil.Tick(time.Now(), empl.UpdatedAt)

	if err := qtx.Update(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if !apperror.IsAppError(mapped) {
			s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			s.logger.Warn("update employee rejected", zap.String("request_id", rid), zap.Error(mapped))
		}
		return EmployeeResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	s.cacheGen.Add(1)
	s.sf.Forget(EmployeesCacheKey)
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeesCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employees cache",
			zap.Error(err),
			zap.String("key", EmployeesCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		Name:       empl.Name,
		EmployeeID: empl.EmployeeCode,
		Email:      empl.Email,
		Department: empl.Department,
		Position:   empl.Position,
		HireDate:   dateutil.Format(empl.HireDate),
		CreatedAt:  dateutil.Format(empl.CreatedAt),
		UpdatedAt:  dateutil.Format(empl.UpdatedAt),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(empls))
	for _, empl := range empls {
		resp = append(resp, mapToResponse(empl))
	}
	return resp
}
