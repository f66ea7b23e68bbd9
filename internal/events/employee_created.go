package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType    = "employee_created"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	OccurredAt   time.Time `json:"occurred_at"`
}
