package request

import "time"

type CreateWorkOrderRequest struct {
	RequestID     string    `json:"request_id"`
	AssignedTo    string    `json:"assigned_to" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}
