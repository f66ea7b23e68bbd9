package promotionschedule

import (
	"time"

	"go-hrdash/internal/employee"

	"github.com/shopspring/decimal"
)

type PromotionSchedule struct {
	ID              int64              `gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64              `gorm:"not null;index"`
	Employee        *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CurrentPosition string             `gorm:"type:varchar(100);not null"`
	TargetPosition  string             `gorm:"type:varchar(100);not null"`
	CurrentSalary   decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	TargetSalary    decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	ScheduledDate   time.Time          `gorm:"not null;index:idx_promotion_schedule_status_date,priority:2"`
	Status          Status             `gorm:"type:varchar(16);not null;default:'pending';index:idx_promotion_schedule_status_date,priority:1;check:chk_promotion_schedule_status,status IN ('pending','approved','completed','cancelled')"`
	Notes           *string            `gorm:"type:text"`
	CreatedAt       time.Time          `gorm:"not null"`
	UpdatedAt       time.Time          `gorm:"not null;autoUpdateTime:false"`
}

func (PromotionSchedule) TableName() string {
	return "promotion_schedule"
}
