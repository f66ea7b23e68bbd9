package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PromotionScheduleTopic         = "hr.promotion.schedule.v1"
	PromotionScheduleStatusChanged = "promotion_schedule.status_changed"
)

// PromotionScheduleStatusChangedEvent snapshots the schedule at the moment its
// status moved, so consumers never need to read it back.
type PromotionScheduleStatusChangedEvent struct {
	EventType       string          `json:"event_type"`
	RequestID       string          `json:"request_id,omitempty"`
	ChangedBy       string          `json:"changed_by,omitempty"`
	ScheduleID      int64           `json:"schedule_id"`
	EmployeeID      int64           `json:"employee_id"`
	PreviousStatus  string          `json:"previous_status"`
	Status          string          `json:"status"`
	CurrentPosition string          `json:"current_position"`
	TargetPosition  string          `json:"target_position"`
	CurrentSalary   decimal.Decimal `json:"current_salary"`
	TargetSalary    decimal.Decimal `json:"target_salary"`
	ScheduledDate   time.Time       `json:"scheduled_date"`
	Notes           *string         `json:"notes,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}
