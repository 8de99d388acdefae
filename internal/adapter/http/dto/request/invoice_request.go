package request

import "time"

// CreateInvoiceRequest bills a completed work order. ClientID is only needed
// when the work order has no originating maintenance request.
type CreateInvoiceRequest struct {
	WorkOrderID string    `json:"work_order_id" binding:"required"`
	ClientID    string    `json:"client_id"`
	Amount      float64   `json:"amount" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}
