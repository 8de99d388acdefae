package entities

import "time"

// WorkOrderStatus advances monotonically: pending, in_progress, completed.
// No stage may be skipped.

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
)

// WorkOrder is a scheduled unit of work assigned to a technician.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (assigned_to-index): assigned_to
//
// RequestID is empty for work orders created without a triaged request.
// CompletedDate is set exactly once, when the order reaches completed.

type WorkOrder struct {
	ID            string          `json:"id"`
	RequestID     string          `json:"request_id,omitempty"`
	AssignedTo    string          `json:"assigned_to"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ScheduledDate time.Time       `json:"scheduled_date"`
	Status        WorkOrderStatus `json:"status"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
