package promotionschedule_test

import (
	"context"
	"testing"
	"time"

	"go-hrdash/internal/employee"
	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/promotionschedule"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/dateutil"
	"go-hrdash/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, code, name string) int64 {
	t.Helper()
	now := time.Now().UTC()
	empl := &employee.Employee{
		Name:         name,
		EmployeeCode: code,
		Email:        code + "@example.com",
		Department:   "Operations",
		Position:     "Coordinator",
		HireDate:     time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(empl).Error)
	return empl.ID
}

func scheduleIn(employeeID int64, days int) promotionschedule.CreatePromotionScheduleRequest {
	return promotionschedule.CreatePromotionScheduleRequest{
		EmployeeID:      employeeID,
		CurrentPosition: "Coordinator",
		TargetPosition:  "Supervisor",
		CurrentSalary:   dec("7000000"),
		TargetSalary:    dec("8500000"),
		ScheduledDate:   dateutil.Format(time.Now().UTC().AddDate(0, 0, days)),
	}
}

func ids(rows []promotionschedule.PromotionScheduleResponse) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestPromotionSchedule_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("upcoming window, status filter and overdue rows", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))
		employeeID := seedEmployee(t, gormDB, "EMP-300", "Andi Wijaya")

		in15, err := svc.Create(ctx, scheduleIn(employeeID, 15))
		require.NoError(t, err)
		in45, err := svc.Create(ctx, scheduleIn(employeeID, 45))
		require.NoError(t, err)
		overdue, err := svc.Create(ctx, scheduleIn(employeeID, -3))
		require.NoError(t, err)

		completedReq := scheduleIn(employeeID, 10)
		completedReq.Status = "completed"
		_, err = svc.Create(ctx, completedReq)
		require.NoError(t, err)

		within30, err := svc.ListUpcoming(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, []int64{overdue.ID, in15.ID}, ids(within30))

		within60, err := svc.ListUpcoming(ctx, 60)
		require.NoError(t, err)
		assert.Equal(t, []int64{overdue.ID, in15.ID, in45.ID}, ids(within60))
		assert.Equal(t, "Andi Wijaya", within60[0].EmployeeName)

		_, err = svc.Update(ctx, promotionschedule.UpdatePromotionScheduleRequest{ID: in15.ID, Status: strPtr("approved")})
		require.NoError(t, err)
		_, err = svc.Update(ctx, promotionschedule.UpdatePromotionScheduleRequest{ID: in15.ID, Status: strPtr("completed")})
		require.NoError(t, err)

		within30, err = svc.ListUpcoming(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, []int64{overdue.ID}, ids(within30))
	})

	t.Run("list all is ordered by scheduled date with employee name", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))
		first := seedEmployee(t, gormDB, "EMP-301", "Sari Utami")
		second := seedEmployee(t, gormDB, "EMP-302", "Bayu Saputra")

		late, err := svc.Create(ctx, scheduleIn(first, 90))
		require.NoError(t, err)
		early, err := svc.Create(ctx, scheduleIn(second, 5))
		require.NoError(t, err)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{early.ID, late.ID}, ids(all))
		assert.Equal(t, "Bayu Saputra", all[0].EmployeeName)
		assert.Equal(t, "Sari Utami", all[1].EmployeeName)
	})

	t.Run("update with only id advances updated_at and nothing else", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))
		employeeID := seedEmployee(t, gormDB, "EMP-303", "Putri Ayu")

		req := scheduleIn(employeeID, 20)
		req.Notes = strPtr("pending budget")
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, promotionschedule.UpdatePromotionScheduleRequest{ID: created.ID})
		require.NoError(t, err)

		before, _ := time.Parse(time.RFC3339Nano, created.UpdatedAt)
		after, _ := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
		assert.True(t, after.After(before))

		updated.UpdatedAt = created.UpdatedAt
		assert.Equal(t, created, updated)
	})

	t.Run("create and update answer with the employee name", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))
		employeeID := seedEmployee(t, gormDB, "EMP-305", "Fajar Hidayat")

		created, err := svc.Create(ctx, scheduleIn(employeeID, 12))
		require.NoError(t, err)
		assert.Equal(t, "Fajar Hidayat", created.EmployeeName)

		updated, err := svc.Update(ctx, promotionschedule.UpdatePromotionScheduleRequest{ID: created.ID, Status: strPtr("approved")})
		require.NoError(t, err)
		assert.Equal(t, "Fajar Hidayat", updated.EmployeeName)

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated.EmployeeName, all[0].EmployeeName)
	})

	t.Run("illegal transition leaves the row untouched", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))
		employeeID := seedEmployee(t, gormDB, "EMP-304", "Eko Nugroho")

		created, err := svc.Create(ctx, scheduleIn(employeeID, 7))
		require.NoError(t, err)

		_, err = svc.Update(ctx, promotionschedule.UpdatePromotionScheduleRequest{ID: created.ID, Status: strPtr("completed")})
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))

		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "pending", all[0].Status)
		assert.Equal(t, created.UpdatedAt, all[0].UpdatedAt)
	})

	t.Run("unknown employee", func(t *testing.T) {
		gormDB, sqlDB := testdb.New(t)
		svc := promotionschedule.NewService(sqlDB, promotionschedule.NewRepository(gormDB))

		_, err := svc.Create(ctx, scheduleIn(999999, 10))
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
