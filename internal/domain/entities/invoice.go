package entities

import "time"

// InvoiceStatus is the billing lifecycle. paid is terminal.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is a billing record persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//
// WorkOrderID is empty for quote-originated invoices, which may precede any
// work order.

type Invoice struct {
	ID          string        `json:"id"`
	WorkOrderID string        `json:"work_order_id,omitempty"`
	ClientID    string        `json:"client_id"`
	Amount      float64       `json:"amount"`
	DueDate     time.Time     `json:"due_date"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
