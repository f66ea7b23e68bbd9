package promotionhistory_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/promotionhistory"
	promotionhistoryerrors "go-hrdash/internal/promotionhistory/errors"
	historyMock "go-hrdash/internal/promotionhistory/mock"
	"go-hrdash/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service promotionhistory.Service
	repo    *historyMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := historyMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: promotionhistory.NewService(db, repo),
		repo:    repo,
	}
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(v string) *string { return &v }

func validCreateRequest() promotionhistory.CreatePromotionHistoryRequest {
	return promotionhistory.CreatePromotionHistoryRequest{
		EmployeeID:       7,
		PreviousPosition: strPtr("Engineer"),
		NewPosition:      "Senior Engineer",
		PreviousSalary:   dec("10000000"),
		NewSalary:        dec("12500000.005"),
		PromotionDate:    "2026-02-01",
		EffectiveDate:    "2026-03-01T00:00:00Z",
	}
}

func TestPromotionHistoryService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, int64(7)).Return(true, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, h *promotionhistory.PromotionHistory) error {
				assert.Equal(t, "Senior Engineer", h.NewPosition)
				assert.True(t, decimal.RequireFromString("12500000.01").Equal(h.NewSalary))
				assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), h.PromotionDate)
				assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), h.EffectiveDate)
				assert.Nil(t, h.PromotionScheduleID)
				h.ID = 3
				return nil
			})

		resp, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, 12500000.01, resp.NewSalary)
		assert.Equal(t, 10000000.0, *resp.PreviousSalary)
		assert.Equal(t, "2026-02-01T00:00:00Z", resp.PromotionDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee -> not found, rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, int64(7)).Return(false, nil)

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative salary rejected before any store access", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.NewSalary = dec("-1")

		_, err := deps.service.Create(context.Background(), req)

		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidInput))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed effective_date rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validCreateRequest()
		req.EffectiveDate = "next monday"

		_, err := deps.service.Create(context.Background(), req)

		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidInput))
	})

	t.Run("schedule already recorded -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		req := validCreateRequest()
		scheduleID := int64(11)
		req.PromotionScheduleID = &scheduleID

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, int64(7)).Return(true, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_promotion_history_schedule"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, promotionhistoryerrors.ErrScheduleAlreadyRecorded)
		assert.Equal(t, 409, apperror.ToHTTP(err).Status)
	})

	t.Run("foreign key race -> not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, int64(7)).Return(true, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23503"})

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestPromotionHistoryService_ListByEmployee(t *testing.T) {
	t.Run("maps rows in repository order", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		newer := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		older := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

		deps.repo.EXPECT().FindByEmployee(ctx, int64(7)).Return([]promotionhistory.PromotionHistory{
			{ID: 2, EmployeeID: 7, NewPosition: "Lead", NewSalary: decimal.NewFromInt(300), PromotionDate: newer, EffectiveDate: newer},
			{ID: 1, EmployeeID: 7, NewPosition: "Senior", NewSalary: decimal.NewFromInt(200), PromotionDate: older, EffectiveDate: older},
		}, nil)

		resp, err := deps.service.ListByEmployee(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Lead", resp[0].NewPosition)
		assert.Nil(t, resp[0].PreviousSalary)
	})

	t.Run("no rows -> empty slice", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmployee(gomock.Any(), int64(99)).Return(nil, nil)

		resp, err := deps.service.ListByEmployee(context.Background(), 99)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmployee(gomock.Any(), int64(7)).Return(nil, errors.New("db down"))

		_, err := deps.service.ListByEmployee(context.Background(), 7)

		assert.Error(t, err)
	})
}
