package response

import (
	"time"

	"manutencao_xpto/internal/domain/entities"
)

type QuoteItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type QuoteResponse struct {
	ID          string              `json:"id"`
	RequestID   string              `json:"request_id,omitempty"`
	Description string              `json:"description"`
	Items       []QuoteItemResponse `json:"items"`
	Total       float64             `json:"total"`
	Status      string              `json:"status"`
	InvoiceID   string              `json:"invoice_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

func FromQuote(q entities.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, QuoteItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return QuoteResponse{
		ID:          q.ID,
		RequestID:   q.RequestID,
		Description: q.Description,
		Items:       items,
		Total:       q.Total,
		Status:      string(q.Status),
		InvoiceID:   q.InvoiceID,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
