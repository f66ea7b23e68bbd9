package promotionhistory

import "github.com/shopspring/decimal"

type CreatePromotionHistoryRequest struct {
	EmployeeID          int64            `json:"employee_id" binding:"required,gt=0"`
	PreviousPosition    *string          `json:"previous_position" binding:"omitnil,max=100"`
	NewPosition         string           `json:"new_position" binding:"required,max=100"`
	PreviousSalary      *decimal.Decimal `json:"previous_salary"`
	NewSalary           *decimal.Decimal `json:"new_salary" binding:"required"`
	PromotionDate       string           `json:"promotion_date" binding:"required"`
	EffectiveDate       string           `json:"effective_date" binding:"required"`
	Notes               *string          `json:"notes"`
	PromotionScheduleID *int64           `json:"promotion_schedule_id" binding:"omitnil,gt=0"`
}

type ListByEmployeeQuery struct {
	EmployeeID int64 `form:"employee_id" binding:"required,gt=0"`
}

type PromotionHistoryResponse struct {
	ID                  int64    `json:"id"`
	EmployeeID          int64    `json:"employee_id"`
	PreviousPosition    *string  `json:"previous_position"`
	NewPosition         string   `json:"new_position"`
	PreviousSalary      *float64 `json:"previous_salary"`
	NewSalary           float64  `json:"new_salary"`
	PromotionDate       string   `json:"promotion_date"`
	EffectiveDate       string   `json:"effective_date"`
	Notes               *string  `json:"notes"`
	PromotionScheduleID *int64   `json:"promotion_schedule_id,omitempty"`
	CreatedAt           string   `json:"created_at"`
}
