package salaryadjustment

import "github.com/shopspring/decimal"

type CreateSalaryAdjustmentRequest struct {
	EmployeeID           int64            `json:"employee_id" binding:"required,gt=0"`
	PreviousSalary       *decimal.Decimal `json:"previous_salary" binding:"required"`
	NewSalary            *decimal.Decimal `json:"new_salary" binding:"required"`
	AdjustmentType       string           `json:"adjustment_type" binding:"required,oneof=annual_increase promotion performance other"`
	AdjustmentPercentage *decimal.Decimal `json:"adjustment_percentage"`
	EffectiveDate        string           `json:"effective_date" binding:"required"`
	Notes                *string          `json:"notes"`
	PromotionScheduleID  *int64           `json:"promotion_schedule_id" binding:"omitnil,gt=0"`
}

type ListByEmployeeQuery struct {
	EmployeeID int64 `form:"employee_id" binding:"required,gt=0"`
}

type SalaryAdjustmentResponse struct {
	ID                   int64    `json:"id"`
	EmployeeID           int64    `json:"employee_id"`
	PreviousSalary       float64  `json:"previous_salary"`
	NewSalary            float64  `json:"new_salary"`
	AdjustmentType       string   `json:"adjustment_type"`
	AdjustmentPercentage *float64 `json:"adjustment_percentage"`
	EffectiveDate        string   `json:"effective_date"`
	Notes                *string  `json:"notes"`
	PromotionScheduleID  *int64   `json:"promotion_schedule_id,omitempty"`
	CreatedAt            string   `json:"created_at"`
}
