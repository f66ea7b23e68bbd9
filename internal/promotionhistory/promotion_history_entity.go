package promotionhistory

import (
	"time"

	"go-hrdash/internal/employee"

	"github.com/shopspring/decimal"
)

// PromotionHistory is an append-only ledger row. A nil previous position or
// salary marks the first recorded position of the employee.
type PromotionHistory struct {
	ID                  int64              `gorm:"primaryKey;autoIncrement"`
	EmployeeID          int64              `gorm:"not null;index:idx_promotion_history_employee_date,priority:1"`
	Employee            *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PreviousPosition    *string            `gorm:"type:varchar(100)"`
	NewPosition         string             `gorm:"type:varchar(100);not null"`
	PreviousSalary      *decimal.Decimal   `gorm:"type:numeric(12,2)"`
	NewSalary           decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PromotionDate       time.Time          `gorm:"not null;index:idx_promotion_history_employee_date,priority:2"`
	EffectiveDate       time.Time          `gorm:"not null"`
	Notes               *string            `gorm:"type:text"`
	PromotionScheduleID *int64             `gorm:"uniqueIndex:uq_promotion_history_schedule"`
	CreatedAt           time.Time          `gorm:"not null"`
}

func (PromotionHistory) TableName() string {
	return "promotion_history"
}
