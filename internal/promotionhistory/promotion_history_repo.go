package promotionhistory

import (
	"context"
	"database/sql"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=promotion_history_repo.go -destination=mock/promotion_history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	Create(ctx context.Context, history *PromotionHistory) error
	FindByEmployee(ctx context.Context, employeeID int64) ([]PromotionHistory, error)
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

func (r *repository) Create(ctx context.Context, history *PromotionHistory) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(history).Error
}

// FindByEmployee lists the most recent promotion first.
func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]PromotionHistory, error) {
	var rows []PromotionHistory
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("promotion_date DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}
