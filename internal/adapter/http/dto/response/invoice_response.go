package response

import (
	"time"

	"manutencao_xpto/internal/domain/entities"
)

type InvoiceResponse struct {
	ID          string    `json:"id"`
	WorkOrderID string    `json:"work_order_id,omitempty"`
	ClientID    string    `json:"client_id"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromInvoice(i entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          i.ID,
		WorkOrderID: i.WorkOrderID,
		ClientID:    i.ClientID,
		Amount:      i.Amount,
		DueDate:     i.DueDate,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		out = append(out, FromInvoice(i))
	}
	return out
}
