package request

type CreateTaskRequest struct {
	WorkOrderID   string `json:"work_order_id" binding:"required"`
	Description   string `json:"description" binding:"required"`
	EstimatedTime int    `json:"estimated_time" binding:"required"`
}
