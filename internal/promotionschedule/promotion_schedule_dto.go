package promotionschedule

import (
	"go-hrdash/internal/shared/optional"

	"github.com/shopspring/decimal"
)

type CreatePromotionScheduleRequest struct {
	EmployeeID      int64            `json:"employee_id" binding:"required,gt=0"`
	CurrentPosition string           `json:"current_position" binding:"required,max=100"`
	TargetPosition  string           `json:"target_position" binding:"required,max=100"`
	CurrentSalary   *decimal.Decimal `json:"current_salary" binding:"required"`
	TargetSalary    *decimal.Decimal `json:"target_salary" binding:"required"`
	ScheduledDate   string           `json:"scheduled_date" binding:"required"`
	Status          string           `json:"status" binding:"omitempty,oneof=pending approved completed cancelled"`
	Notes           *string          `json:"notes"`
}

// UpdatePromotionScheduleRequest changes only the fields that were sent.
// Notes distinguishes an explicit null (clear) from an absent key.
type UpdatePromotionScheduleRequest struct {
	ID             int64                    `json:"id" binding:"required,gt=0"`
	TargetPosition *string                  `json:"target_position" binding:"omitnil,min=1,max=100"`
	TargetSalary   *decimal.Decimal         `json:"target_salary"`
	ScheduledDate  *string                  `json:"scheduled_date"`
	Status         *string                  `json:"status" binding:"omitnil,oneof=pending approved completed cancelled"`
	Notes          optional.Nullable[string] `json:"notes"`
}

type ListUpcomingQuery struct {
	DaysAhead int `form:"days_ahead,default=30" binding:"gt=0,lte=3650"`
}

type PromotionScheduleResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	CurrentPosition string  `json:"current_position"`
	TargetPosition  string  `json:"target_position"`
	CurrentSalary   float64 `json:"current_salary"`
	TargetSalary    float64 `json:"target_salary"`
	ScheduledDate   string  `json:"scheduled_date"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}
