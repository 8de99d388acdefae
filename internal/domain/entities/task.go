package entities

import "time"

// TaskStatus mirrors the work-order lifecycle, with one extra edge: an
// in-progress task may be paused back to pending.

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is a time-tracked sub-unit of a work order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (work_order_id-index): work_order_id
//
// StartTime is set exactly once on the first start; pausing and restarting
// does not overwrite it. EndTime is set exactly once on completion, so
// end >= start always holds. EstimatedTime (minutes) is advisory only.

type Task struct {
	ID            string     `json:"id"`
	WorkOrderID   string     `json:"work_order_id"`
	Description   string     `json:"description"`
	EstimatedTime int        `json:"estimated_time,omitempty"`
	Status        TaskStatus `json:"status"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
