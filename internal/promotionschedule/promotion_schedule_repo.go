package promotionschedule

import (
	"context"
	"database/sql"
	"time"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=promotion_schedule_repo.go -destination=mock/promotion_schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	Create(ctx context.Context, schedule *PromotionSchedule) error
	FindByID(ctx context.Context, id int64) (*PromotionSchedule, error)
	Update(ctx context.Context, schedule *PromotionSchedule) error
	FindAll(ctx context.Context) ([]PromotionSchedule, error)
	FindDueBy(ctx context.Context, cutoff time.Time, statuses []Status) ([]PromotionSchedule, error)
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

func (r *repository) Create(ctx context.Context, schedule *PromotionSchedule) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(schedule).Error
}

// FindByID loads the row with its employee and returns gorm.ErrRecordNotFound
// when no row matches.
func (r *repository) FindByID(ctx context.Context, id int64) (*PromotionSchedule, error) {
	var schedule PromotionSchedule
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) Update(ctx context.Context, schedule *PromotionSchedule) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(schedule).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PromotionSchedule, error) {
	var rows []PromotionSchedule
	err := r.db.WithContext(ctx).
		InnerJoins("Employee").
		Order("promotion_schedule.scheduled_date ASC").
		Order("promotion_schedule.id ASC").
		Find(&rows).Error
	return rows, err
}

// FindDueBy lists schedules in statuses whose date is on or before cutoff.
// There is no lower bound, so overdue rows are included.
func (r *repository) FindDueBy(ctx context.Context, cutoff time.Time, statuses []Status) ([]PromotionSchedule, error) {
	names := make([]string, 0, len(statuses))
	for _, st := range statuses {
		names = append(names, string(st))
	}

	var rows []PromotionSchedule
	err := r.db.WithContext(ctx).
		InnerJoins("Employee").
		Where("promotion_schedule.scheduled_date <= ?", cutoff).
		Where("promotion_schedule.status IN ?", names).
		Order("promotion_schedule.scheduled_date ASC").
		Order("promotion_schedule.id ASC").
		Find(&rows).Error
	return rows, err
}
