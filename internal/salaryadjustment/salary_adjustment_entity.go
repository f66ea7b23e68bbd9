package salaryadjustment

import (
	"time"

	"go-hrdash/internal/employee"

	"github.com/shopspring/decimal"
)

type AdjustmentType string

const (
	TypeAnnualIncrease AdjustmentType = "annual_increase"
	TypePromotion      AdjustmentType = "promotion"
	TypePerformance    AdjustmentType = "performance"
	TypeOther          AdjustmentType = "other"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case TypeAnnualIncrease, TypePromotion, TypePerformance, TypeOther:
		return true
	}
	return false
}

type SalaryAdjustment struct {
	ID                   int64              `gorm:"primaryKey;autoIncrement"`
	EmployeeID           int64              `gorm:"not null;index:idx_salary_adjustments_employee_date,priority:1"`
	Employee             *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PreviousSalary       decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	NewSalary            decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	AdjustmentType       AdjustmentType     `gorm:"type:varchar(32);not null;check:chk_salary_adjustments_type,adjustment_type IN ('annual_increase','promotion','performance','other')"`
	AdjustmentPercentage *decimal.Decimal   `gorm:"type:numeric(5,2)"`
	EffectiveDate        time.Time          `gorm:"not null;index:idx_salary_adjustments_employee_date,priority:2"`
	Notes                *string            `gorm:"type:text"`
	PromotionScheduleID  *int64             `gorm:"uniqueIndex:uq_salary_adjustments_schedule"`
	CreatedAt            time.Time          `gorm:"not null"`
}

func (SalaryAdjustment) TableName() string {
	return "salary_adjustments"
}
