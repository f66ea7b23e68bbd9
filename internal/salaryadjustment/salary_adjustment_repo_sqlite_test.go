package salaryadjustment_test

import (
	"context"
	"testing"
	"time"

	"go-hrdash/internal/employee"
	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/salaryadjustment"
	"go-hrdash/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	now := time.Now().UTC()
	empl := &employee.Employee{
		Name:         "Rizky Pratama",
		EmployeeCode: "EMP-200",
		Email:        "rizky@example.com",
		Department:   "Engineering",
		Position:     "Engineer",
		HireDate:     time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(empl).Error)
	return empl.ID
}

func TestSalaryAdjustment_SQLite(t *testing.T) {
	ctx := context.Background()
	gormDB, sqlDB := testdb.New(t)
	svc := salaryadjustment.NewService(sqlDB, salaryadjustment.NewRepository(gormDB))
	employeeID := seedEmployee(t, gormDB)

	t.Run("derived percentage is persisted", func(t *testing.T) {
		req := validCreateRequest()
		req.EmployeeID = employeeID
		req.EffectiveDate = "2024-01-01"

		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 10.0, *created.AdjustmentPercentage)
	})

	t.Run("zero previous salary stores null", func(t *testing.T) {
		req := validCreateRequest()
		req.EmployeeID = employeeID
		req.PreviousSalary = dec("0")
		req.EffectiveDate = "2025-01-01"

		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, created.AdjustmentPercentage)
	})

	t.Run("lists most recent effective date first", func(t *testing.T) {
		req := validCreateRequest()
		req.EmployeeID = employeeID
		req.EffectiveDate = "2023-01-01"
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)

		rows, err := svc.ListByEmployee(ctx, employeeID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2025-01-01T00:00:00Z", rows[0].EffectiveDate)
		assert.Nil(t, rows[0].AdjustmentPercentage)
		assert.Equal(t, "2024-01-01T00:00:00Z", rows[1].EffectiveDate)
		assert.Equal(t, 10.0, *rows[1].AdjustmentPercentage)
		assert.Equal(t, "2023-01-01T00:00:00Z", rows[2].EffectiveDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		req := validCreateRequest()
		req.EmployeeID = 999999

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
