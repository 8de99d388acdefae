package entities

import "time"

// QuoteStatus represents the lifecycle of a price quote.
//
// Approval is terminal and irreversible; it is the transition that triggers
// invoice creation.

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteItem is a single priced line of a quote.
type QuoteItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Quote is an itemized price proposal persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (request_id-index): request_id
//
// Monetary representation:
//   - Total is always recomputed server-side from Items. A total supplied in
//     an inbound payload is ignored, never trusted.

type Quote struct {
	ID          string      `json:"id"`
	RequestID   string      `json:"request_id,omitempty"`
	Description string      `json:"description"`
	Items       []QuoteItem `json:"items"`
	Total       float64     `json:"total"`
	Status      QuoteStatus `json:"status"`
	InvoiceID   string      `json:"invoice_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ComputeTotal derives the authoritative total from the item lines.
func ComputeTotal(items []QuoteItem) float64 {
	total := 0.0
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}
