package salaryadjustment

import (
	"context"
	"database/sql"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_adjustment_repo.go -destination=mock/salary_adjustment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	Create(ctx context.Context, adjustment *SalaryAdjustment) error
	FindByEmployee(ctx context.Context, employeeID int64) ([]SalaryAdjustment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, adjustment *SalaryAdjustment) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(adjustment).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]SalaryAdjustment, error) {
	var rows []SalaryAdjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}
