package events

import "time"

const (
	EmployeeCreatedTopic     = "ems.employee.lifecycle.v1"
	EmployeeCreatedEventType = "employee_created"
)

// EmployeeCreatedEvent tells the identity system a new employee can sign in.
// Delivery is at-least-once; consumers must be idempotent on EmployeeID.
type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
